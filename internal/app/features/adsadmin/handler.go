// Package adsadmin provides the admin JSON API for affiliate ads.
//
// Endpoints (Bearer key):
//   - GET    /api/admin/ads      - All ads, active and inactive
//   - POST   /api/admin/ads      - Create
//   - GET    /api/admin/ads/{id} - One ad
//   - PUT    /api/admin/ads/{id} - Update
//   - DELETE /api/admin/ads/{id} - Delete
package adsadmin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/ads"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/inputval"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/workflow"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Handler handles admin ad requests.
type Handler struct {
	ads    *adstore.Store
	logger *zap.Logger
}

// NewHandler creates a new adsadmin handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		ads:    adstore.New(db),
		logger: logger,
	}
}

type adIn struct {
	Title      string `json:"title" validate:"required,max=200" label:"Title"`
	Subtitle   string `json:"subtitle" validate:"max=300" label:"Subtitle"`
	ButtonText string `json:"button_text" validate:"max=80" label:"Button text"`
	Link       string `json:"link" validate:"required,httpurl,max=2000" label:"Link"`
	ImageURL   string `json:"image_url" validate:"omitempty,httpurl,max=2000" label:"Image"`
	Placement  string `json:"placement" validate:"required,placement" label:"Placement"`
	Partner    string `json:"partner" validate:"max=200" label:"Partner"`
	IsActive   bool   `json:"is_active"`
}

func (in *adIn) toModel() models.AffiliateAd {
	return models.AffiliateAd{
		Title:      strings.TrimSpace(in.Title),
		Subtitle:   in.Subtitle,
		ButtonText: in.ButtonText,
		Link:       in.Link,
		ImageURL:   in.ImageURL,
		Placement:  in.Placement,
		Partner:    in.Partner,
		IsActive:   in.IsActive,
	}
}

// ListHandler handles GET /api/admin/ads.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	ads, err := h.ads.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list ads", zap.Error(err))
		jsonutil.InternalError(w, "Could not load ads")
		return
	}
	if ads == nil {
		ads = []models.AffiliateAd{}
	}
	jsonutil.OK(w, map[string]any{"ads": ads, "count": len(ads)})
}

// CreateHandler handles POST /api/admin/ads.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in adIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		fe := result.First()
		jsonutil.FieldError(w, fe.Field, fe.Message)
		return
	}

	id, err := h.ads.Create(r.Context(), in.toModel())
	if err != nil {
		h.logger.Error("failed to create ad", zap.String("title", in.Title), zap.Error(err))
		jsonutil.InternalError(w, "Could not create ad")
		return
	}

	h.logger.Info("ad created",
		zap.String("ad_id", id.Hex()),
		zap.String("placement", in.Placement))
	jsonutil.Created(w, map[string]string{"id": id.Hex()})
}

// GetHandler handles GET /api/admin/ads/{id}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	ad, err := h.ads.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Ad not found")
			return
		}
		h.logger.Error("failed to load ad", zap.String("ad_id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "Could not load ad")
		return
	}
	jsonutil.OK(w, ad)
}

// UpdateHandler handles PUT /api/admin/ads/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var in adIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		fe := result.First()
		jsonutil.FieldError(w, fe.Field, fe.Message)
		return
	}

	ad := in.toModel()
	ad.ID = id
	if err := h.ads.Update(r.Context(), ad); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Ad not found")
			return
		}
		h.logger.Error("failed to update ad", zap.String("ad_id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "Could not update ad")
		return
	}
	jsonutil.OK(w, map[string]string{"id": id.Hex()})
}

// DeleteHandler handles DELETE /api/admin/ads/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.ads.Delete(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Ad not found")
			return
		}
		h.logger.Error("failed to delete ad", zap.String("ad_id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "Could not delete ad")
		return
	}
	jsonutil.NoContent(w)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := workflow.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "Ad id is not valid")
		return primitive.NilObjectID, false
	}
	return id, true
}
