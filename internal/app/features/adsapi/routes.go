package adsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// Routes returns a router for the public ad placement feed.
//
// When mounted at /api/ads:
//   - GET /api/ads?placements=a,b,c - Active ads grouped by placement
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Get("/", h.AdsHandler)

	return r
}
