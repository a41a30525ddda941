// Package postsadmin provides the admin JSON API for blog posts.
//
// Endpoints (Bearer key):
//   - GET    /api/admin/posts        - All posts including drafts
//   - GET    /api/admin/posts/{slug} - One post
//   - PUT    /api/admin/posts/{slug} - Create or update (slug is the previous slug)
//   - DELETE /api/admin/posts/{slug} - Delete
package postsadmin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	poststore "github.com/thecityofwhiteplains/cityguide/internal/app/store/posts"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/htmlsanitize"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/slug"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Drafter generates a draft body for a topic. Wire an implementation in when
// machine drafting is available; the API works without one.
type Drafter interface {
	Draft(ctx context.Context, topic string) (title, body string, err error)
}

// Handler handles admin blog requests.
type Handler struct {
	posts   *poststore.Store
	drafter Drafter
	logger  *zap.Logger
}

// NewHandler creates a new postsadmin handler. drafter may be nil.
func NewHandler(db *mongo.Database, drafter Drafter, logger *zap.Logger) *Handler {
	return &Handler{
		posts:   poststore.New(db),
		drafter: drafter,
		logger:  logger,
	}
}

// ListHandler handles GET /api/admin/posts.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list posts", zap.Error(err))
		jsonutil.InternalError(w, "Could not load posts")
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}
	jsonutil.OK(w, map[string]any{"posts": posts, "count": len(posts)})
}

// GetHandler handles GET /api/admin/posts/{slug}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Post not found")
			return
		}
		h.logger.Error("failed to load post", zap.Error(err))
		jsonutil.InternalError(w, "Could not load post")
		return
	}
	jsonutil.OK(w, post)
}

// postIn is the save payload. Slug may differ from the path slug; the path
// slug identifies the existing row when renaming.
type postIn struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Status   string `json:"status"`

	Body    string `json:"body"`
	Excerpt string `json:"excerpt"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	AdEmbedCode     string `json:"ad_embed_code"`
}

// SaveHandler handles PUT /api/admin/posts/{slug}.
//
// The path slug is the post's previous slug; "new" creates a post. Renames
// update the existing row first and only create when nothing matched, so a
// retried rename does not fork the post.
func (h *Handler) SaveHandler(w http.ResponseWriter, r *http.Request) {
	prevSlug := chi.URLParam(r, "slug")
	if prevSlug == "new" {
		prevSlug = ""
	}

	var in postIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		jsonutil.FieldError(w, "title", "Title is required")
		return
	}
	if in.Status == "" {
		in.Status = models.PostStatusDraft
	}
	if !models.IsValidPostStatus(in.Status) {
		jsonutil.FieldError(w, "status", `Status must be "draft" or "published"`)
		return
	}

	newSlug := strings.TrimSpace(in.Slug)
	if newSlug == "" {
		newSlug = slug.Make(in.Title)
	} else {
		newSlug = slug.Make(newSlug)
	}
	if newSlug == "" {
		jsonutil.FieldError(w, "slug", "Could not derive a slug; provide one")
		return
	}

	post := models.BlogPost{
		Slug:            newSlug,
		Title:           in.Title,
		Category:        in.Category,
		Status:          in.Status,
		Body:            htmlsanitize.Body(in.Body),
		Excerpt:         htmlsanitize.Text(in.Excerpt),
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		AdEmbedCode:     in.AdEmbedCode,
	}

	if in.Status == models.PostStatusPublished {
		// Preserve the original publish time when republishing.
		if prev, err := h.posts.GetBySlug(r.Context(), firstNonEmpty(prevSlug, newSlug)); err == nil && prev.PublishedAt != nil {
			post.PublishedAt = prev.PublishedAt
		} else {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
	}

	if err := h.posts.Save(r.Context(), post, prevSlug); err != nil {
		h.logger.Error("failed to save post",
			zap.String("slug", newSlug),
			zap.String("prev_slug", prevSlug),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not save post")
		return
	}

	h.logger.Info("post saved",
		zap.String("slug", newSlug),
		zap.String("status", in.Status))
	jsonutil.OK(w, map[string]string{"slug": newSlug, "status": in.Status})
}

// DeleteHandler handles DELETE /api/admin/posts/{slug}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	s := chi.URLParam(r, "slug")
	if err := h.posts.Delete(r.Context(), s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			jsonutil.NotFound(w, "Post not found")
			return
		}
		h.logger.Error("failed to delete post", zap.String("slug", s), zap.Error(err))
		jsonutil.InternalError(w, "Could not delete post")
		return
	}
	jsonutil.NoContent(w)
}

// DraftHandler handles POST /api/admin/posts/draft. Returns 501 until a
// Drafter is wired in.
func (h *Handler) DraftHandler(w http.ResponseWriter, r *http.Request) {
	if h.drafter == nil {
		jsonutil.Error(w, http.StatusNotImplemented, "Draft generation is not configured")
		return
	}

	var in struct {
		Topic string `json:"topic"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}
	in.Topic = strings.TrimSpace(in.Topic)
	if in.Topic == "" {
		jsonutil.FieldError(w, "topic", "A topic is required")
		return
	}

	title, body, err := h.drafter.Draft(r.Context(), in.Topic)
	if err != nil {
		h.logger.Error("draft generation failed", zap.String("topic", in.Topic), zap.Error(err))
		jsonutil.Error(w, http.StatusBadGateway, "Draft generation failed")
		return
	}

	jsonutil.OK(w, map[string]string{
		"title": title,
		"body":  htmlsanitize.Body(body),
	})
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
