package postsadmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/apicors"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
)

// Routes returns a router with the admin blog endpoints.
//
// When mounted at /api/admin/posts:
//   - GET    /api/admin/posts
//   - POST   /api/admin/posts/draft
//   - GET    /api/admin/posts/{slug}
//   - PUT    /api/admin/posts/{slug}
//   - DELETE /api/admin/posts/{slug}
//
// Authentication is via API key (Bearer token in Authorization header).
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/", h.ListHandler)
	r.Post("/draft", h.DraftHandler)
	r.Get("/{slug}", h.GetHandler)
	r.Put("/{slug}", h.SaveHandler)
	r.Delete("/{slug}", h.DeleteHandler)

	return r
}
