package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"devfolio/internal/httputil"
)

// RequestID assigns every request a correlation id, honoring one supplied
// by an upstream proxy, and echoes it in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, httputil.WithRequestID(r, requestID))
	})
}
