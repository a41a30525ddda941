// Package adsapi serves active affiliate ad placements to the public site.
//
// Endpoint:
//   - GET /api/ads?placements=a,b,c - Active ads grouped by placement
package adsapi

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/ads"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Handler handles public ad placement requests.
type Handler struct {
	ads    *adstore.Store
	logger *zap.Logger
}

// NewHandler creates a new adsapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		ads:    adstore.New(db),
		logger: logger,
	}
}

// adOut is the public ad shape. ButtonText is always populated so the
// frontend never needs a fallback.
type adOut struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	ButtonText string `json:"button_text"`
	Link       string `json:"link"`
	ImageURL   string `json:"image_url,omitempty"`
	Placement  string `json:"placement"`
	Partner    string `json:"partner,omitempty"`
}

// AdsHandler handles GET /api/ads.
// Unknown placement names are dropped rather than rejected; asking for
// nothing valid yields an empty response.
func (h *Handler) AdsHandler(w http.ResponseWriter, r *http.Request) {
	var placements []string
	for _, p := range strings.Split(r.URL.Query().Get("placements"), ",") {
		p = strings.TrimSpace(p)
		if p == "" || !models.IsValidPlacement(p) {
			continue
		}
		placements = append(placements, p)
	}

	ads, err := h.ads.GetActiveByPlacements(r.Context(), placements)
	if err != nil {
		h.logger.Error("failed to load ads",
			zap.Strings("placements", placements),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not load ads")
		return
	}

	grouped := make(map[string][]adOut, len(placements))
	for _, p := range placements {
		grouped[p] = []adOut{}
	}
	for _, ad := range ads {
		grouped[ad.Placement] = append(grouped[ad.Placement], adOut{
			ID:         ad.ID.Hex(),
			Title:      ad.Title,
			Subtitle:   ad.Subtitle,
			ButtonText: ad.DisplayButtonText(),
			Link:       ad.Link,
			ImageURL:   ad.ImageURL,
			Placement:  ad.Placement,
			Partner:    ad.Partner,
		})
	}

	jsonutil.OK(w, map[string]any{"placements": grouped})
}
