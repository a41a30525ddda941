package moderation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a chi.Router with the moderation console mounted.
//
// When mounted at /admin (behind session auth + CSRF):
//   - GET  /admin                           - Queue counts
//   - GET  /admin/businesses                - Business submission queue
//   - GET  /admin/businesses/{id}           - Submission detail
//   - POST /admin/businesses/{id}/decision  - Approve/reject
//   - GET  /admin/events                    - Event submission queue
//   - GET  /admin/events/{id}               - Submission detail
//   - POST /admin/events/{id}/decision      - Approve/reject
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Dashboard)

	r.Route("/businesses", func(sr chi.Router) {
		sr.Get("/", h.BusinessQueue)
		sr.Get("/{id}", h.BusinessDetail)
		sr.Post("/{id}/decision", h.DecideBusiness)
	})

	r.Route("/events", func(sr chi.Router) {
		sr.Get("/", h.EventQueue)
		sr.Get("/{id}", h.EventDetail)
		sr.Post("/{id}/decision", h.DecideEvent)
	})

	return r
}
