// Package eventsapi provides the public events calendar endpoints:
// community event submission intake and the combined calendar feed.
//
// Endpoints:
//   - POST /api/event-submissions - Submit a community event for review
//   - GET  /api/events            - Upcoming events (city feed + approved community)
package eventsapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	cityeventstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/cityevents"
	eventsubstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/eventsubs"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/htmlsanitize"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/inputval"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// calendarLimit caps each source feeding the public calendar.
const calendarLimit = 200

// Handler handles public events calendar requests.
type Handler struct {
	submissions *eventsubstore.Store
	cityEvents  *cityeventstore.Store
	metrics     *metrics.Metrics
	logger      *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewHandler creates a new eventsapi handler.
func NewHandler(db *mongo.Database, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		submissions: eventsubstore.New(db),
		cityEvents:  cityeventstore.New(db),
		metrics:     m,
		logger:      logger,
		now:         time.Now,
	}
}

// eventSubmissionIn is the public event submission payload.
type eventSubmissionIn struct {
	Title    string `json:"title" validate:"required,max=300" label:"Title"`
	StartAt  string `json:"start_at" validate:"required" label:"Start time"`
	EndAt    string `json:"end_at" label:"End time"`
	Location string `json:"location" validate:"required,max=400" label:"Location"`
	Audience string `json:"audience" validate:"omitempty,audience" label:"Audience"`

	Cost          string   `json:"cost" validate:"max=200" label:"Cost"`
	Description   string   `json:"description" validate:"max=4000" label:"Description"`
	Accessibility string   `json:"accessibility" validate:"max=1000" label:"Accessibility"`
	URL           string   `json:"url" validate:"omitempty,httpurl,max=2000" label:"Event link"`
	Attachments   []string `json:"attachments" validate:"max=10" label:"Attachments"`

	ContactName  string `json:"contact_name" validate:"required,max=200" label:"Contact name"`
	ContactEmail string `json:"contact_email" validate:"required,max=320" label:"Contact email"`
}

// SubmitHandler handles POST /api/event-submissions.
// Submissions always start pending regardless of payload contents.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var in eventSubmissionIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.Description = htmlsanitize.Text(in.Description)

	if result := inputval.Validate(in); result.HasErrors() {
		fe := result.First()
		jsonutil.FieldError(w, fe.Field, fe.Message)
		return
	}
	if !inputval.IsValidEmail(in.ContactEmail) {
		jsonutil.FieldError(w, "contact_email", "Contact email is not a valid email address")
		return
	}

	startAt, err := parseEventTime(in.StartAt)
	if err != nil {
		jsonutil.FieldError(w, "start_at", "Start time must be an RFC 3339 timestamp")
		return
	}
	var endAt *time.Time
	if in.EndAt != "" {
		t, err := parseEventTime(in.EndAt)
		if err != nil {
			jsonutil.FieldError(w, "end_at", "End time must be an RFC 3339 timestamp")
			return
		}
		if t.Before(startAt) {
			jsonutil.FieldError(w, "end_at", "End time must not be before the start time")
			return
		}
		endAt = &t
	}

	sub := models.EventSubmission{
		Title:         in.Title,
		StartAt:       startAt,
		EndAt:         endAt,
		Location:      in.Location,
		Audience:      in.Audience,
		Cost:          in.Cost,
		Description:   in.Description,
		Accessibility: in.Accessibility,
		URL:           in.URL,
		Attachments:   in.Attachments,
		ContactName:   in.ContactName,
		ContactEmail:  in.ContactEmail,
	}

	id, err := h.submissions.Create(r.Context(), sub)
	if err != nil {
		h.logger.Error("failed to create event submission",
			zap.String("title", in.Title),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not save submission")
		return
	}

	h.metrics.CountSubmission("event")
	h.logger.Info("event submission received",
		zap.String("submission_id", id.Hex()),
		zap.Time("start_at", startAt))

	jsonutil.Created(w, map[string]any{
		"id":     id.Hex(),
		"status": models.SubmissionStatusPending,
	})
}

// EventsHandler handles GET /api/events.
// The calendar is the union of city feed events and approved community
// submissions, each row tagged with its source, sorted by start time.
func (h *Handler) EventsHandler(w http.ResponseWriter, r *http.Request) {
	from := h.now().Add(-24 * time.Hour) // keep events running since yesterday visible

	city, err := h.cityEvents.GetUpcoming(r.Context(), from, calendarLimit)
	if err != nil {
		h.logger.Error("failed to load city events", zap.Error(err))
		jsonutil.InternalError(w, "Could not load events")
		return
	}
	community, err := h.submissions.GetApproved(r.Context(), from, calendarLimit)
	if err != nil {
		h.logger.Error("failed to load community events", zap.Error(err))
		jsonutil.InternalError(w, "Could not load events")
		return
	}

	events := make([]models.PublicEvent, 0, len(city)+len(community))
	for _, ev := range city {
		if ev.ID.IsZero() || ev.Title == "" {
			continue
		}
		events = append(events, models.PublicEvent{
			ID:       ev.ID.Hex(),
			Source:   models.EventSourceCity,
			Title:    ev.Title,
			StartAt:  ev.StartAt,
			EndAt:    ev.EndAt,
			Location: ev.Location,
			URL:      ev.URL,
			ImageURL: ev.ImageURL,
		})
	}
	for _, ev := range community {
		if ev.ID.IsZero() || ev.Title == "" {
			continue
		}
		events = append(events, models.PublicEvent{
			ID:       ev.ID.Hex(),
			Source:   models.EventSourceCommunity,
			Title:    ev.Title,
			StartAt:  ev.StartAt,
			EndAt:    ev.EndAt,
			Location: ev.Location,
			Audience: ev.Audience,
			Cost:     ev.Cost,
			URL:      ev.URL,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartAt.Before(events[j].StartAt)
	})

	jsonutil.OK(w, map[string]any{
		"events": events,
		"count":  len(events),
	})
}

// parseEventTime accepts RFC 3339 or a bare local datetime/date.
func parseEventTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
