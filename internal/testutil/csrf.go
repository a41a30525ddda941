package testutil

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// csrfTestKey is a fixed 32-byte key for the console's CSRF layer in tests.
var csrfTestKey = []byte("0123456789abcdef0123456789abcdef")

// WithCSRFProtection wraps h in the same CSRF middleware the console runs
// behind (matching cookie and field names), so csrf.Token(r) yields a real
// token when pages render.
func WithCSRFProtection(h http.Handler) http.Handler {
	return csrf.Protect(csrfTestKey,
		csrf.Secure(false),
		csrf.CookieName("cityguide_csrf"),
		csrf.FieldName("csrf_token"),
	)(h)
}

// SkipCSRFCheck marks a request as exempt from CSRF verification. Use it on
// form posts built by hand in tests, which have no token round trip.
func SkipCSRFCheck(r *http.Request) *http.Request {
	return csrf.UnsafeSkipCheck(r)
}
