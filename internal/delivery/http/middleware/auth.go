package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "skillsharehub/internal/delivery/http/helpers"
	"skillsharehub/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

var (
	errMalformedHeader = errors.New("invalid authorization format")
	errMissingToken    = errors.New("missing token")
)

// SetIdentity returns a context carrying the authenticated identity. Used by auth middleware.
func SetIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the authenticated identity from the context, if present.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok || id.UserID == "" {
		return domain.Identity{}, false
	}
	return id, true
}

// SetUserID returns a context with only the user ID set.
func SetUserID(ctx context.Context, userID string) context.Context {
	return SetIdentity(ctx, domain.Identity{UserID: userID})
}

// UserIDFromContext returns the authenticated user ID from the context, if present.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.UserID, ok
}

// ViewerFromContext returns the requesting viewer; anonymous when no identity is set.
func ViewerFromContext(ctx context.Context) domain.Viewer {
	id, _ := IdentityFromContext(ctx)
	return id.Viewer()
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(auth string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", errMalformedHeader
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the identity in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			identity, ok := verify(w, r, auth, verifier, logger)
			if !ok {
				return
			}
			next(w, r.WithContext(SetIdentity(r.Context(), identity)))
		}
	}
}

// OptionalAuth is like RequireAuth but lets requests without an Authorization header
// through as anonymous viewers. A header that is present but invalid is still rejected.
func OptionalAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next(w, r)
				return
			}
			identity, ok := verify(w, r, auth, verifier, logger)
			if !ok {
				return
			}
			next(w, r.WithContext(SetIdentity(r.Context(), identity)))
		}
	}
}

func verify(w http.ResponseWriter, r *http.Request, auth string, verifier domain.TokenVerifier, logger *slog.Logger) (domain.Identity, bool) {
	token, err := bearerToken(auth)
	if err != nil {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
		return domain.Identity{}, false
	}
	identity, err := verifier.Verify(token)
	if err != nil {
		logger.DebugContext(r.Context(), "token rejected", "error", err, "request_id", RequestIDFromContext(r.Context()))
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
		return domain.Identity{}, false
	}
	return identity, true
}
