package blogapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// Routes returns a router for the public blog feed.
//
// When mounted at /api/posts:
//   - GET /api/posts        - Published posts, newest first
//   - GET /api/posts/{slug} - A single published post
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Get("/", h.ListHandler)
	r.Get("/{slug}", h.GetHandler)

	return r
}
