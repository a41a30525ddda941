package settingsadmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
)

// Routes returns a router with the admin settings endpoints.
//
// When mounted at /api/admin/settings:
//   - GET /api/admin/settings
//   - PUT /api/admin/settings/{group}
//
// Authentication is via API key (Bearer token in Authorization header).
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/", h.GetAllHandler)
	r.Put("/hero-images", h.PutHeroImagesHandler)
	r.Put("/promo-card", h.PutPromoCardHandler)
	r.Put("/start-cards", h.PutStartCardsHandler)
	r.Put("/site-verification", h.PutSiteVerificationHandler)

	return r
}
