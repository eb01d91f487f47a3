package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized matches any *APIError with status 401: the server did
// not accept the presented credential. The authorizer reacts to this with
// a forced logout before the error reaches the caller.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden matches any *APIError with status 403: authenticated but
// insufficiently privileged. Session state is never changed for this.
var ErrForbidden = errors.New("forbidden")

// APIError is a non-2xx remote response, surfaced verbatim. Body carries
// the raw payload so UI layers can display server-side validation
// messages untouched.
type APIError struct {
	Status int
	URL    string
	Body   []byte
}

func (e *APIError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("api: %s returned %d: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("api: %s returned %d", e.URL, e.Status)
}

// Is maps the status code onto the sentinel taxonomy so callers can use
// errors.Is without inspecting numeric codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	}
	return false
}
