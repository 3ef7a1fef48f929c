package middleware

import (
	"net/http"
	"strings"

	"marketing-dashboard/backend/internal/httpx"
	"marketing-dashboard/backend/internal/security"
)

const bearerPrefix = "bearer "

// Identity returns middleware that resolves the session token from the session
// cookie or Authorization header and, when valid, sets the caller identity in
// context. Requests without a valid token pass through unauthenticated; use
// RequireIdentity to reject them.
func Identity(verifier *security.SessionVerifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r, cookieName)
			if token != "" {
				if id, err := verifier.Validate(token); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects requests whose context carries no verified identity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			httpx.Error(w, http.StatusUnauthorized, "missing or invalid authorization")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractToken returns the session token from the named cookie, falling back to
// a Bearer Authorization header, or "" if neither is present.
func extractToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
