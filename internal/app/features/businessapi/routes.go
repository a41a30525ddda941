package businessapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// SubmissionRoutes returns a router for the public submission endpoint.
//
// When mounted at /api/business-submissions:
//   - POST /api/business-submissions - Submit a new-business or claim request
//
// The endpoint is unauthenticated; CORS is permissive so the static site can
// call it from the browser.
func SubmissionRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Post("/", h.SubmitHandler)

	return r
}

// ListingRoutes returns a router for the published directory feed.
//
// When mounted at /api/listings:
//   - GET /api/listings - Published listings, newest first, capped at 100
func ListingRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Get("/", h.ListingsHandler)

	return r
}
