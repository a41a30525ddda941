package siteconfig

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// Routes returns a router for the public site configuration.
//
// When mounted at /api/site-config:
//   - GET /api/site-config
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Get("/", h.GetHandler)

	return r
}
