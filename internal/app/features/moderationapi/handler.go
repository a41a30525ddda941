// Package moderationapi provides the admin JSON API for moderating business
// and event submissions, plus the city calendar feed refresh.
//
// Endpoints (Bearer key):
//   - GET  /api/admin/business-submissions?status=pending
//   - POST /api/admin/business-submissions/{id}/status
//   - GET  /api/admin/event-submissions?status=pending
//   - POST /api/admin/event-submissions/{id}/status
//   - POST /api/admin/events/refresh-feed
package moderationapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	cityeventstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/cityevents"
	eventsubstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/eventsubs"
	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/feed"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// queuePageSize is the page size for moderation queue listings.
const queuePageSize = 50

// Handler handles admin moderation requests.
type Handler struct {
	moderator   *workflow.Moderator
	submissions *submissionstore.Store
	eventSubs   *eventsubstore.Store
	cityEvents  *cityeventstore.Store
	feed        *feed.Fetcher
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewHandler creates a new moderationapi handler. fetcher may be disabled
// (no calendar URL configured); refresh-feed then reports 503.
func NewHandler(db *mongo.Database, moderator *workflow.Moderator, fetcher *feed.Fetcher, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		moderator:   moderator,
		submissions: submissionstore.New(db),
		eventSubs:   eventsubstore.New(db),
		cityEvents:  cityeventstore.New(db),
		feed:        fetcher,
		metrics:     m,
		logger:      logger,
	}
}

// ListBusinessHandler handles GET /api/admin/business-submissions.
// status filters to pending/approved/rejected; empty means all.
func (h *Handler) ListBusinessHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.IsValidSubmissionStatus(status) {
		jsonutil.FieldError(w, "status", "Status must be pending, approved, or rejected")
		return
	}

	page := parsePage(r)
	subs, err := h.submissions.ListByStatus(r.Context(), status, queuePageSize, page)
	if err != nil {
		h.logger.Error("failed to list business submissions", zap.Error(err))
		jsonutil.InternalError(w, "Could not load submissions")
		return
	}
	if subs == nil {
		subs = []models.BusinessSubmission{}
	}

	jsonutil.OK(w, map[string]any{
		"submissions": subs,
		"count":       len(subs),
		"page":        page,
	})
}

// decisionIn is the status decision payload. SendEmail only applies to event
// decisions; business submitters are always notified.
type decisionIn struct {
	Status    string `json:"status"` // approved or rejected
	Reason    string `json:"reason,omitempty"`
	SendEmail bool   `json:"sendEmail,omitempty"`
}

// DecideBusinessHandler handles POST /api/admin/business-submissions/{id}/status.
func (h *Handler) DecideBusinessHandler(w http.ResponseWriter, r *http.Request) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Submission id is not valid")
		return
	}

	var in decisionIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	sub, listing, err := h.moderator.DecideBusiness(r.Context(), id, in.Status, in.Reason)
	if err != nil {
		h.writeDecisionError(w, "business", id.Hex(), err)
		return
	}

	h.metrics.CountDecision("business", in.Status)
	out := map[string]any{"submission": sub}
	if listing != nil {
		out["listing"] = listing
	}
	jsonutil.OK(w, out)
}

// ListEventsHandler handles GET /api/admin/event-submissions.
func (h *Handler) ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.IsValidSubmissionStatus(status) {
		jsonutil.FieldError(w, "status", "Status must be pending, approved, or rejected")
		return
	}

	page := parsePage(r)
	subs, err := h.eventSubs.ListByStatus(r.Context(), status, queuePageSize, page)
	if err != nil {
		h.logger.Error("failed to list event submissions", zap.Error(err))
		jsonutil.InternalError(w, "Could not load submissions")
		return
	}
	if subs == nil {
		subs = []models.EventSubmission{}
	}

	jsonutil.OK(w, map[string]any{
		"submissions": subs,
		"count":       len(subs),
		"page":        page,
	})
}

// DecideEventHandler handles POST /api/admin/event-submissions/{id}/status.
func (h *Handler) DecideEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Submission id is not valid")
		return
	}

	var in decisionIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	sub, err := h.moderator.DecideEvent(r.Context(), id, in.Status, in.Reason, in.SendEmail)
	if err != nil {
		h.writeDecisionError(w, "event", id.Hex(), err)
		return
	}

	h.metrics.CountDecision("event", in.Status)
	jsonutil.OK(w, map[string]any{"submission": sub})
}

// RefreshFeedHandler handles POST /api/admin/events/refresh-feed.
// Fetches the city calendar and upserts every parsed event by its feed key,
// so repeated refreshes update rows in place.
func (h *Handler) RefreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	if h.feed == nil || !h.feed.Enabled() {
		jsonutil.Error(w, http.StatusServiceUnavailable, "City calendar feed is not configured")
		return
	}

	events, err := h.feed.Fetch(r.Context())
	if err != nil {
		h.logger.Error("city feed fetch failed", zap.Error(err))
		jsonutil.Error(w, http.StatusBadGateway, "Could not fetch the city calendar")
		return
	}

	var stored int
	for _, ev := range events {
		if err := h.cityEvents.UpsertByFeedKey(r.Context(), ev); err != nil {
			h.logger.Error("failed to store city event",
				zap.String("feed_key", ev.FeedKey),
				zap.Error(err))
			continue
		}
		stored++
	}

	h.logger.Info("city feed refreshed",
		zap.Int("fetched", len(events)),
		zap.Int("stored", stored))

	jsonutil.OK(w, map[string]any{
		"fetched": len(events),
		"stored":  stored,
	})
}

// writeDecisionError maps moderation errors to status codes.
func (h *Handler) writeDecisionError(w http.ResponseWriter, kind, id string, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidID):
		jsonutil.BadRequest(w, "Submission id is not valid")
	case errors.Is(err, workflow.ErrBadStatus):
		jsonutil.FieldError(w, "status", "Status must be approved or rejected")
	case errors.Is(err, workflow.ErrNotFound):
		jsonutil.NotFound(w, "Submission not found")
	default:
		h.logger.Error("moderation decision failed",
			zap.String("kind", kind),
			zap.String("submission_id", id),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not apply decision")
	}
}

func parsePage(r *http.Request) int64 {
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
