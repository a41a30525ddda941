// Package moderation is the admin console for reviewing business and event
// submissions. It renders server-side HTML behind session auth + CSRF; the
// JSON equivalents for headless use live in moderationapi.
package moderation

import (
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	errorsfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/errors"
	eventsubstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/eventsubs"
	listingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/listings"
	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/viewdata"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// queuePageSize is the page size for the review queues.
const queuePageSize = 25

// Handler provides the moderation console pages.
type Handler struct {
	moderator   *workflow.Moderator
	submissions *submissionstore.Store
	eventSubs   *eventsubstore.Store
	listings    *listingstore.Store
	metrics     *metrics.Metrics
	errLog      *errorsfeature.ErrorLogger
	logger      *zap.Logger
}

// NewHandler creates a new moderation console Handler.
func NewHandler(db *mongo.Database, moderator *workflow.Moderator, m *metrics.Metrics, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		moderator:   moderator,
		submissions: submissionstore.New(db),
		eventSubs:   eventsubstore.New(db),
		listings:    listingstore.New(db),
		metrics:     m,
		errLog:      errLog,
		logger:      logger,
	}
}

// DashboardVM is the view model for the console landing page.
type DashboardVM struct {
	viewdata.BaseVM
	PendingBusinesses int64
	PendingEvents     int64
}

// Dashboard renders the console landing page with queue counts.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	vm := DashboardVM{
		BaseVM: viewdata.NewBaseVM(r, "Moderation", "/admin"),
	}

	var err error
	vm.PendingBusinesses, err = h.submissions.CountByStatus(r.Context(), models.SubmissionStatusPending)
	if err != nil {
		h.errLog.Log(r, "failed to count pending business submissions", err)
	}
	vm.PendingEvents, err = h.eventSubs.CountByStatus(r.Context(), models.SubmissionStatusPending)
	if err != nil {
		h.errLog.Log(r, "failed to count pending event submissions", err)
	}

	templates.Render(w, r, "moderation/dashboard", vm)
}

// BusinessQueueVM is the view model for the business review queue.
type BusinessQueueVM struct {
	viewdata.BaseVM
	Status      string
	Submissions []models.BusinessSubmission
}

// BusinessQueue renders the business submission queue.
func (h *Handler) BusinessQueue(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !models.IsValidSubmissionStatus(status) {
		status = models.SubmissionStatusPending
	}

	subs, err := h.submissions.ListByStatus(r.Context(), status, queuePageSize, 1)
	if err != nil {
		h.errLog.Log(r, "failed to list business submissions", err)
		subs = nil
	}

	vm := BusinessQueueVM{
		BaseVM:      viewdata.NewBaseVM(r, "Business Submissions", "/admin"),
		Status:      status,
		Submissions: subs,
	}

	templates.Render(w, r, "moderation/business_queue", vm)
}

// BusinessDetailVM is the view model for one business submission.
type BusinessDetailVM struct {
	viewdata.BaseVM
	Submission models.BusinessSubmission
	Listing    *models.BusinessListing // non-nil when a listing was derived
}

// BusinessDetail renders one business submission for review.
func (h *Handler) BusinessDetail(w http.ResponseWriter, r *http.Request) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sub, err := h.submissions.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load business submission", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := BusinessDetailVM{
		BaseVM:     viewdata.NewBaseVM(r, sub.BusinessName, "/admin/businesses"),
		Submission: sub,
	}
	if listing, err := h.listings.GetBySourceSubmission(r.Context(), sub.ID); err == nil {
		vm.Listing = &listing
	}

	templates.Render(w, r, "moderation/business_detail", vm)
}

// DecideBusiness applies an approve/reject form post and returns to the queue.
func (h *Handler) DecideBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := r.FormValue("status")
	reason := r.FormValue("reason")

	if _, _, err := h.moderator.DecideBusiness(r.Context(), id, status, reason); err != nil {
		h.writeDecisionError(w, r, err)
		return
	}

	h.metrics.CountDecision("business", status)
	http.Redirect(w, r, "/admin/businesses", http.StatusSeeOther)
}

// EventQueueVM is the view model for the event review queue.
type EventQueueVM struct {
	viewdata.BaseVM
	Status      string
	Submissions []models.EventSubmission
}

// EventQueue renders the community event submission queue.
func (h *Handler) EventQueue(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if !models.IsValidSubmissionStatus(status) {
		status = models.SubmissionStatusPending
	}

	subs, err := h.eventSubs.ListByStatus(r.Context(), status, queuePageSize, 1)
	if err != nil {
		h.errLog.Log(r, "failed to list event submissions", err)
		subs = nil
	}

	vm := EventQueueVM{
		BaseVM:      viewdata.NewBaseVM(r, "Event Submissions", "/admin"),
		Status:      status,
		Submissions: subs,
	}

	templates.Render(w, r, "moderation/event_queue", vm)
}

// EventDetailVM is the view model for one event submission.
type EventDetailVM struct {
	viewdata.BaseVM
	Submission models.EventSubmission
}

// EventDetail renders one event submission for review.
func (h *Handler) EventDetail(w http.ResponseWriter, r *http.Request) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sub, err := h.eventSubs.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			http.NotFound(w, r)
			return
		}
		h.errLog.Log(r, "failed to load event submission", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	vm := EventDetailVM{
		BaseVM:     viewdata.NewBaseVM(r, sub.Title, "/admin/events"),
		Submission: sub,
	}

	templates.Render(w, r, "moderation/event_detail", vm)
}

// DecideEvent applies an approve/reject form post and returns to the queue.
func (h *Handler) DecideEvent(w http.ResponseWriter, r *http.Request) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	status := r.FormValue("status")
	reason := r.FormValue("reason")
	sendEmail := r.FormValue("send_email") != ""

	if _, err := h.moderator.DecideEvent(r.Context(), id, status, reason, sendEmail); err != nil {
		h.writeDecisionError(w, r, err)
		return
	}

	h.metrics.CountDecision("event", status)
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (h *Handler) writeDecisionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workflow.ErrInvalidID), errors.Is(err, workflow.ErrBadStatus):
		http.Error(w, "Bad Request", http.StatusBadRequest)
	case errors.Is(err, workflow.ErrNotFound):
		http.NotFound(w, r)
	default:
		h.errLog.Log(r, "moderation decision failed", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
