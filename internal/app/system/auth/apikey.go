package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// APIKeyAuth returns middleware that authenticates admin JSON requests with a
// static bearer key. Requests must send "Authorization: Bearer <key>".
// If the configured key is empty the middleware rejects everything, so a
// misconfigured deployment fails closed.
func APIKeyAuth(key string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				logger.Error("admin API key is not configured; rejecting request",
					zap.String("path", r.URL.Path))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				logger.Warn("admin API key mismatch",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
