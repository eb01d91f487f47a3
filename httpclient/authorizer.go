package httpclient

import (
	"context"
	"net/http"
)

// Session is the slice of the session manager the authorizer needs: a
// token snapshot and the forced-logout entry point.
type Session interface {
	AccessToken() string
	Logout(ctx context.Context) error
}

// Authorizer is an http.RoundTripper decorator that injects the bearer
// credential into every outbound request and reacts to authorization
// failures.
//
// Behavior per request:
//
//  1. Take one token snapshot. If non-empty, set the Authorization header
//     to "Bearer <token>" on a clone of the request, overwriting any
//     prior value. If empty, forward the request untouched and let the
//     server decide.
//  2. On a 401 response, force a logout and fire the redirect handler
//     exactly once. The response still reaches the caller.
//  3. On a 403 response, report through the denied handler without
//     touching session state.
//  4. Everything else passes through unchanged.
//
// Configure via the setters before first use; an Authorizer is immutable
// once requests flow through it.
type Authorizer struct {
	next       http.RoundTripper
	session    Session
	onRedirect func()
	onDenied   func(status int, url string)
}

// NewAuthorizer decorates next with credential injection bound to
// session. A nil next falls back to http.DefaultTransport.
func NewAuthorizer(next http.RoundTripper, session Session) *Authorizer {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Authorizer{next: next, session: session}
}

// OnRedirect registers the navigation signal fired after a forced logout.
func (a *Authorizer) OnRedirect(fn func()) {
	a.onRedirect = fn
}

// OnDenied registers an observer for 401/403 responses, used for metrics
// and audit. It runs before the redirect handler.
func (a *Authorizer) OnDenied(fn func(status int, url string)) {
	a.onDenied = fn
}

// RoundTrip implements http.RoundTripper.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	// One snapshot per request: a concurrent logout may win or lose the
	// race, but a single request never mixes two token values.
	token := ""
	if a.session != nil {
		token = a.session.AccessToken()
	}

	if token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if a.session != nil {
			_ = a.session.Logout(req.Context())
		}
		a.report(resp.StatusCode, req.URL.String())
		if a.onRedirect != nil {
			a.onRedirect()
		}
	case http.StatusForbidden:
		a.report(resp.StatusCode, req.URL.String())
	}

	return resp, nil
}

func (a *Authorizer) report(status int, url string) {
	if a.onDenied != nil {
		a.onDenied(status, url)
	}
}
