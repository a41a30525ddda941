// Package settingsadmin provides the admin JSON API for typed site settings.
// Each setting group is replaced whole with upsert-by-key semantics.
//
// Endpoints (Bearer key):
//   - GET /api/admin/settings                  - All groups
//   - PUT /api/admin/settings/hero-images      - Replace hero images
//   - PUT /api/admin/settings/promo-card       - Replace the promo card
//   - PUT /api/admin/settings/start-cards      - Replace the start cards
//   - PUT /api/admin/settings/site-verification - Replace the verification snippet
package settingsadmin

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	settingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/settings"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Handler handles admin settings requests.
type Handler struct {
	settings *settingstore.Store
	logger   *zap.Logger
}

// NewHandler creates a new settingsadmin handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		settings: settingstore.New(db),
		logger:   logger,
	}
}

// GetAllHandler handles GET /api/admin/settings.
func (h *Handler) GetAllHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.GetSiteConfig(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", zap.Error(err))
		jsonutil.InternalError(w, "Could not load settings")
		return
	}
	jsonutil.OK(w, cfg)
}

// PutHeroImagesHandler handles PUT /api/admin/settings/hero-images.
func (h *Handler) PutHeroImagesHandler(w http.ResponseWriter, r *http.Request) {
	var group models.HeroImages
	if err := jsonutil.Decode(r, &group); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	for _, img := range group.Images {
		if img.Page == "" || img.ImageURL == "" {
			jsonutil.FieldError(w, "images", "Every hero image needs a page and an image URL")
			return
		}
	}
	h.upsert(w, r, models.ConfigRecord{
		Key:        models.ConfigKeyHeroImages,
		HeroImages: &group,
	})
}

// PutPromoCardHandler handles PUT /api/admin/settings/promo-card.
func (h *Handler) PutPromoCardHandler(w http.ResponseWriter, r *http.Request) {
	var group models.PromoCard
	if err := jsonutil.Decode(r, &group); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	if group.Enabled && group.Title == "" {
		jsonutil.FieldError(w, "title", "An enabled promo card needs a title")
		return
	}
	h.upsert(w, r, models.ConfigRecord{
		Key:       models.ConfigKeyPromoCard,
		PromoCard: &group,
	})
}

// PutStartCardsHandler handles PUT /api/admin/settings/start-cards.
func (h *Handler) PutStartCardsHandler(w http.ResponseWriter, r *http.Request) {
	var group models.StartCards
	if err := jsonutil.Decode(r, &group); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	for _, card := range group.Cards {
		if card.Key == "" || card.Title == "" || card.Link == "" {
			jsonutil.FieldError(w, "cards", "Every start card needs a key, a title, and a link")
			return
		}
	}
	h.upsert(w, r, models.ConfigRecord{
		Key:        models.ConfigKeyStartCards,
		StartCards: &group,
	})
}

// PutSiteVerificationHandler handles PUT /api/admin/settings/site-verification.
func (h *Handler) PutSiteVerificationHandler(w http.ResponseWriter, r *http.Request) {
	var group models.SiteVerification
	if err := jsonutil.Decode(r, &group); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	h.upsert(w, r, models.ConfigRecord{
		Key:              models.ConfigKeySiteVerification,
		SiteVerification: &group,
	})
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, rec models.ConfigRecord) {
	rec.UpdatedAt = time.Now().UTC()
	if err := h.settings.Upsert(r.Context(), rec); err != nil {
		h.logger.Error("failed to save setting group",
			zap.String("key", rec.Key),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not save settings")
		return
	}
	h.logger.Info("setting group updated", zap.String("key", rec.Key))
	jsonutil.OK(w, map[string]string{"status": "saved", "key": rec.Key})
}
