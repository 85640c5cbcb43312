package domain

import "time"

// Identity is the authenticated caller as asserted by a verified token.
// Users are owned by an external identity provider; only their id and username are known here.
type Identity struct {
	UserID   string
	Username string
}

// Viewer returns the identity as a read-side viewer.
func (i Identity) Viewer() Viewer {
	return Viewer{UserID: i.UserID}
}

// TokenIssuer issues tokens (e.g. JWT) for an identity.
type TokenIssuer interface {
	Issue(identity Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}
