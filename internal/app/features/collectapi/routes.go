package collectapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// Routes returns a router for the analytics beacon.
//
// When mounted at /api/analytics:
//   - POST /api/analytics/collect
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Post("/collect", h.CollectHandler)

	return r
}
