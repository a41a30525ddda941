package analyticsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
)

// Routes returns a router with the admin analytics endpoints.
//
// When mounted at /api/admin/analytics:
//   - GET /api/admin/analytics/summary
//
// Authentication is via API key (Bearer token in Authorization header).
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/summary", h.SummaryHandler)

	return r
}
