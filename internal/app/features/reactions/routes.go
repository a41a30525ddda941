package reactions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// Routes returns a router for reaction counters.
//
// When mounted at /api/reactions:
//   - GET  /api/reactions?slug=x - Current counters
//   - POST /api/reactions        - Record a reaction
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Get("/", h.GetHandler)
	r.Post("/", h.PostHandler)

	return r
}
