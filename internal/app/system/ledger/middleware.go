// internal/app/system/ledger/middleware.go
package ledger

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	ledgerstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/ledger"
)

// ctxKey is the context key type for ledger data.
type ctxKey int

const ctxKeyEntry ctxKey = iota

// Config holds configuration for the ledger middleware.
type Config struct {
	// Store is the ledger store for persisting entries.
	Store *ledgerstore.Store

	// Logger for logging persistence failures.
	Logger *zap.Logger

	// OnlyAPIPaths restricts recording to paths starting with these prefixes.
	// If empty, all paths are eligible.
	OnlyAPIPaths []string

	// ExcludePaths is a list of path prefixes never recorded.
	ExcludePaths []string
}

// DefaultConfig returns a Config covering the JSON API surface.
func DefaultConfig(store *ledgerstore.Store, logger *zap.Logger) Config {
	return Config{
		Store:  store,
		Logger: logger,
		OnlyAPIPaths: []string{
			"/api/",
		},
		ExcludePaths: []string{
			"/healthz",
			"/metrics",
			"/static",
			"/favicon.ico",
		},
	}
}

// Middleware records failed API requests (status >= 400) to the ledger so
// moderators can see what broke without digging through process logs.
// Entries are persisted off the request path.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			if len(cfg.OnlyAPIPaths) > 0 {
				included := false
				for _, prefix := range cfg.OnlyAPIPaths {
					if strings.HasPrefix(path, prefix) {
						included = true
						break
					}
				}
				if !included {
					next.ServeHTTP(w, r)
					return
				}
			}

			entry := &ledgerstore.Entry{
				RequestID: uuid.New().String(),
				Method:    r.Method,
				Path:      path,
				Query:     r.URL.RawQuery,
				RemoteIP:  extractIP(r),
				UserAgent: r.UserAgent(),
				CreatedAt: time.Now().UTC(),
			}

			r = r.WithContext(context.WithValue(r.Context(), ctxKeyEntry, entry))

			wrapped := &responseWrapper{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			start := time.Now()
			next.ServeHTTP(wrapped, r)
			entry.DurationMs = float64(time.Since(start).Microseconds()) / 1000.0

			if wrapped.statusCode < 400 {
				return
			}

			entry.StatusCode = wrapped.statusCode
			if entry.ErrorClass == "" {
				entry.ErrorClass = classifyStatus(wrapped.statusCode)
			}

			go func() {
				storeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := cfg.Store.Create(storeCtx, *entry); err != nil {
					cfg.Logger.Error("failed to store ledger entry",
						zap.String("request_id", entry.RequestID),
						zap.Error(err))
				}
			}()
		})
	}
}

func classifyStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "validation"
	case status == http.StatusUnauthorized:
		return "auth"
	case status == http.StatusForbidden:
		return "forbidden"
	case status == http.StatusNotFound:
		return "not_found"
	case status >= 500:
		return "internal"
	default:
		return "client_error"
	}
}

// SetErrorClass overrides the status-derived error class for the current
// request's entry.
func SetErrorClass(ctx context.Context, class string) {
	if entry, ok := ctx.Value(ctxKeyEntry).(*ledgerstore.Entry); ok {
		entry.ErrorClass = class
	}
}

// SetErrorMessage attaches a human-readable error message to the current
// request's entry.
func SetErrorMessage(ctx context.Context, message string) {
	if entry, ok := ctx.Value(ctxKeyEntry).(*ledgerstore.Entry); ok {
		entry.ErrorMessage = message
	}
}

// GetRequestID returns the request ID for the current request.
func GetRequestID(ctx context.Context) string {
	if entry, ok := ctx.Value(ctxKeyEntry).(*ledgerstore.Entry); ok {
		return entry.RequestID
	}
	return ""
}

// responseWrapper captures the status code written by the handler.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush implements http.Flusher.
func (rw *responseWrapper) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// extractIP extracts the client IP from the request.
func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
