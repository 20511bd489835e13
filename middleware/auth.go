package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"notekeeper/session"
)

type identityKey struct{}

// RequireAuth rejects requests without a valid session before the wrapped
// handler runs. On success the resolved identity is attached to the
// request context.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := session.TokenFromRequest(r)
			if !ok {
				unauthorized(w)
				return
			}
			identity, ok := sessions.Validate(token)
			if !ok {
				unauthorized(w)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func IdentityFromContext(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(session.Identity)
	return identity, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
