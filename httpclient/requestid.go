package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID is an http.RoundTripper decorator that stamps every outbound
// request with a fresh correlation ID, unless the caller already set one.
// It is a separate layer from the Authorizer so that credential injection
// stays the only header mutation the authorizer performs.
type RequestID struct {
	next http.RoundTripper
}

// NewRequestID decorates next with correlation-ID stamping. A nil next
// falls back to http.DefaultTransport.
func NewRequestID(next http.RoundTripper) *RequestID {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RequestID{next: next}
}

// RoundTrip implements http.RoundTripper.
func (r *RequestID) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(requestIDHeader, uuid.NewString())
	}
	return r.next.RoundTrip(req)
}
