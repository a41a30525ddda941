package adsadmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
)

// Routes returns a router with the admin ad endpoints.
//
// When mounted at /api/admin/ads:
//   - GET    /api/admin/ads
//   - POST   /api/admin/ads
//   - GET    /api/admin/ads/{id}
//   - PUT    /api/admin/ads/{id}
//   - DELETE /api/admin/ads/{id}
//
// Authentication is via API key (Bearer token in Authorization header).
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)
	r.Get("/{id}", h.GetHandler)
	r.Put("/{id}", h.UpdateHandler)
	r.Delete("/{id}", h.DeleteHandler)

	return r
}
