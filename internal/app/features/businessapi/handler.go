// Package businessapi provides the public business directory endpoints:
// submission intake and the published listing feed.
//
// Endpoints:
//   - POST /api/business-submissions - Submit a new-business or claim request
//   - GET  /api/listings             - Published listings, newest first
package businessapi

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	listingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/listings"
	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/htmlsanitize"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/inputval"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// publishedLimit caps the public listing feed.
const publishedLimit = 100

// Handler handles public business directory requests.
type Handler struct {
	submissions *submissionstore.Store
	listings    *listingstore.Store
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewHandler creates a new businessapi handler.
func NewHandler(db *mongo.Database, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		submissions: submissionstore.New(db),
		listings:    listingstore.New(db),
		metrics:     m,
		logger:      logger,
	}
}

// submissionIn is the public submission payload.
type submissionIn struct {
	BusinessName string `json:"business_name" validate:"required,max=200" label:"Business name"`
	Mode         string `json:"mode" validate:"required" label:"Mode"`
	Category     string `json:"category" validate:"required,max=100" label:"Category"`

	ContactName  string `json:"contact_name" validate:"required,max=200" label:"Contact name"`
	ContactEmail string `json:"contact_email" validate:"required,max=320" label:"Contact email"`
	Notes        string `json:"notes" validate:"max=4000" label:"Notes"`

	LinkedListingID string `json:"linked_listing_id" validate:"omitempty,objectid" label:"Linked listing"`

	Address    string   `json:"address" validate:"required,max=400" label:"Address"`
	Phone      string   `json:"phone" validate:"max=40" label:"Phone"`
	WebsiteURL string   `json:"website_url" validate:"omitempty,httpurl,max=2000" label:"Website"`
	ImageURL   string   `json:"image_url" validate:"omitempty,httpurl,max=2000" label:"Image"`
	Audience   []string `json:"audience" validate:"max=10" label:"Audience"`
	Tags       []string `json:"tags" validate:"max=20" label:"Tags"`
}

// SubmitHandler handles POST /api/business-submissions.
// Every accepted submission lands as pending; the payload cannot set status.
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var in submissionIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.Notes = htmlsanitize.Text(in.Notes)

	if result := inputval.Validate(in); result.HasErrors() {
		fe := result.First()
		jsonutil.FieldError(w, fe.Field, fe.Message)
		return
	}
	if !models.IsValidSubmissionMode(in.Mode) {
		jsonutil.FieldError(w, "mode", `Mode must be "new" or "claim"`)
		return
	}
	if !inputval.IsValidEmail(in.ContactEmail) {
		jsonutil.FieldError(w, "contact_email", "Contact email is not a valid email address")
		return
	}
	for _, a := range in.Audience {
		if !models.IsValidEventAudience(a) {
			jsonutil.FieldError(w, "audience", "Unknown audience tag")
			return
		}
	}

	sub := models.BusinessSubmission{
		BusinessName: in.BusinessName,
		Mode:         in.Mode,
		Category:     in.Category,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		Notes:        in.Notes,
		Address:      in.Address,
		Phone:        in.Phone,
		WebsiteURL:   in.WebsiteURL,
		ImageURL:     in.ImageURL,
		Audience:     in.Audience,
		Tags:         in.Tags,
	}

	if in.Mode == models.SubmissionModeClaim && in.LinkedListingID != "" {
		oid, err := workflow.ParseID(in.LinkedListingID)
		if err != nil {
			jsonutil.FieldError(w, "linked_listing_id", "Linked listing id is not valid")
			return
		}
		sub.LinkedListingID = &oid
	}

	id, err := h.submissions.Create(r.Context(), sub)
	if err != nil {
		h.logger.Error("failed to create business submission",
			zap.String("business_name", in.BusinessName),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not save submission")
		return
	}

	created, err := h.submissions.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load created submission",
			zap.String("submission_id", id.Hex()),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not save submission")
		return
	}

	h.metrics.CountSubmission("business")
	h.logger.Info("business submission received",
		zap.String("submission_id", id.Hex()),
		zap.String("mode", in.Mode))

	jsonutil.Created(w, map[string]any{"submission": created})
}

// ListingsHandler handles GET /api/listings.
// Only published listings are served, newest first, capped at 100.
func (h *Handler) ListingsHandler(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.GetPublished(r.Context(), publishedLimit)
	if err != nil {
		h.logger.Error("failed to load published listings", zap.Error(err))
		jsonutil.InternalError(w, "Could not load listings")
		return
	}
	if listings == nil {
		listings = []models.BusinessListing{}
	}

	jsonutil.OK(w, map[string]any{
		"listings": listings,
		"count":    len(listings),
	})
}
