package eventsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
)

// SubmissionRoutes returns a router for community event submissions.
//
// When mounted at /api/event-submissions:
//   - POST /api/event-submissions - Submit a community event for review
func SubmissionRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Post("/", h.SubmitHandler)

	return r
}

// CalendarRoutes returns a router for the public calendar.
//
// When mounted at /api/events:
//   - GET /api/events - Upcoming city + approved community events
func CalendarRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())

	r.Get("/", h.EventsHandler)

	return r
}
