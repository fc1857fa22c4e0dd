package middleware

import (
	"net/http"
	"strings"

	"devfolio/internal/auth"
	"devfolio/internal/httputil"
)

// RequireAuth validates the bearer token on every request it wraps and
// stores the authenticated user id in the context. Handlers behind it
// can rely on httputil.GetUserID succeeding.
func RequireAuth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
