// Package blogapi serves published blog posts to the public site.
//
// Endpoints:
//   - GET /api/posts        - Published posts, newest first
//   - GET /api/posts/{slug} - A single published post
package blogapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	poststore "github.com/thecityofwhiteplains/cityguide/internal/app/store/posts"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// listLimit caps the public post list.
const listLimit = 50

// Handler handles public blog requests.
type Handler struct {
	posts  *poststore.Store
	logger *zap.Logger
}

// NewHandler creates a new blogapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		posts:  poststore.New(db),
		logger: logger,
	}
}

// postSummary is the list shape: everything but the body.
type postSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	PublishedAt any    `json:"published_at,omitempty"`
}

// ListHandler handles GET /api/posts.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPublished(r.Context(), listLimit)
	if err != nil {
		h.logger.Error("failed to load published posts", zap.Error(err))
		jsonutil.InternalError(w, "Could not load posts")
		return
	}

	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, postSummary{
			Slug:        p.Slug,
			Title:       p.Title,
			Category:    p.Category,
			Excerpt:     p.Excerpt,
			PublishedAt: p.PublishedAt,
		})
	}

	jsonutil.OK(w, map[string]any{
		"posts": out,
		"count": len(out),
	})
}

// GetHandler handles GET /api/posts/{slug}.
// Drafts are invisible here; requesting one returns 404 like any miss.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		jsonutil.NotFound(w, "Post not found")
		return
	}

	post, err := h.posts.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Post not found")
			return
		}
		h.logger.Error("failed to load post", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "Could not load post")
		return
	}
	if post.Status != models.PostStatusPublished {
		jsonutil.NotFound(w, "Post not found")
		return
	}

	jsonutil.OK(w, post)
}
