package moderationapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
)

// Routes returns a router with the admin moderation endpoints.
//
// When mounted at /api/admin:
//   - GET  /api/admin/business-submissions
//   - POST /api/admin/business-submissions/{id}/status
//   - GET  /api/admin/event-submissions
//   - POST /api/admin/event-submissions/{id}/status
//   - POST /api/admin/events/refresh-feed
//
// Authentication is via API key (Bearer token in Authorization header).
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Route("/business-submissions", func(sr chi.Router) {
		sr.Get("/", h.ListBusinessHandler)
		sr.Post("/{id}/status", h.DecideBusinessHandler)
	})

	r.Route("/event-submissions", func(sr chi.Router) {
		sr.Get("/", h.ListEventsHandler)
		sr.Post("/{id}/status", h.DecideEventHandler)
	})

	r.Post("/events/refresh-feed", h.RefreshFeedHandler)

	return r
}
