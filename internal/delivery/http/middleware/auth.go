package middleware

import (
	"context"
	"net/http"
	"strings"

	"tablereservation/internal/delivery/http/helpers"
	"tablereservation/internal/domain"
)

type contextKey string

const memberIDKey contextKey = "memberID"

// SetMemberID returns a context with the member ID set. Used by auth middleware.
func SetMemberID(ctx context.Context, memberID string) context.Context {
	return context.WithValue(ctx, memberIDKey, memberID)
}

// MemberIDFromContext returns the authenticated member ID from the context,
// if present. This is the actor identity the services authorize against.
func MemberIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(memberIDKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// member ID in the request context. If the token is missing or invalid, it
// responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing token")
				return
			}
			memberID, err := verifier.Verify(token)
			if err != nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetMemberID(r.Context(), memberID))
			next(w, r)
		}
	}
}
