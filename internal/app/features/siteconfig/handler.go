// Package siteconfig serves the public site configuration aggregate:
// hero images, promo card, start cards, and the site verification snippet.
//
// Endpoint:
//   - GET /api/site-config
package siteconfig

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	settingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/settings"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
)

// Handler handles public site configuration requests.
type Handler struct {
	settings *settingstore.Store
	logger   *zap.Logger
}

// NewHandler creates a new siteconfig handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		settings: settingstore.New(db),
		logger:   logger,
	}
}

// GetHandler handles GET /api/site-config.
// Missing groups come back as zero values, so the frontend can always
// destructure the full shape.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.GetSiteConfig(r.Context())
	if err != nil {
		h.logger.Error("failed to load site config", zap.Error(err))
		jsonutil.InternalError(w, "Could not load site configuration")
		return
	}

	jsonutil.OK(w, cfg)
}
