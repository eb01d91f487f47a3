package credstore

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the backing store cannot be reached.
var ErrUnavailable = errors.New("credential store unavailable")

// Credentials is the opaque token pair issued by the remote auth endpoint.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Empty reports whether no access token is held. The access token alone
// decides authentication state; the refresh token is carried alongside it.
func (c Credentials) Empty() bool {
	return c.AccessToken == ""
}

// Record is the result of a load: the token pair plus the serialized
// identity exactly as it was saved. Identity is nil when no identity entry
// exists.
type Record struct {
	Credentials Credentials
	Identity    []byte
}

// Consistent reports whether the record is either fully present or fully
// absent. A token without an identity (or the reverse) is a partial write
// from an earlier process and should be treated as signed out.
func (r Record) Consistent() bool {
	hasToken := !r.Credentials.Empty()
	hasIdentity := len(r.Identity) > 0
	return hasToken == hasIdentity
}

// Store persists the current credential pair and identity blob. Save and
// Clear mutate all three entries as one atomic unit from the perspective
// of any concurrent Load.
type Store interface {
	Save(ctx context.Context, creds Credentials, identity []byte) error
	Load(ctx context.Context) (Record, error)
	Clear(ctx context.Context) error
}
