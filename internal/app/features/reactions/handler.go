// Package reactions serves per-slug up/down/share counters.
//
// Endpoints:
//   - GET  /api/reactions?slug=x - Current counters for a content slug
//   - POST /api/reactions        - Record one reaction {slug, kind}
package reactions

import (
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	reactionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/reactions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// maxSlugLen bounds reaction slugs; anything longer is junk traffic.
const maxSlugLen = 300

// Handler handles reaction counter requests.
type Handler struct {
	reactions *reactionstore.Store
	logger    *zap.Logger
}

// NewHandler creates a new reactions handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		reactions: reactionstore.New(db),
		logger:    logger,
	}
}

// GetHandler handles GET /api/reactions?slug=x.
// Unknown slugs return zero counters rather than 404.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.URL.Query().Get("slug"))
	if slug == "" || len(slug) > maxSlugLen {
		jsonutil.FieldError(w, "slug", "A content slug is required")
		return
	}

	counter, err := h.reactions.Get(r.Context(), slug)
	if err != nil {
		h.logger.Error("failed to load reactions", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "Could not load reactions")
		return
	}

	jsonutil.OK(w, counter)
}

type reactIn struct {
	Slug string `json:"slug"`
	Kind string `json:"kind"`
}

// PostHandler handles POST /api/reactions.
// The increment is a single atomic upsert, so concurrent reactions to the
// same slug never lose counts.
func (h *Handler) PostHandler(w http.ResponseWriter, r *http.Request) {
	var in reactIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" || len(in.Slug) > maxSlugLen {
		jsonutil.FieldError(w, "slug", "A content slug is required")
		return
	}
	if !models.IsValidReactionKind(in.Kind) {
		jsonutil.FieldError(w, "kind", `Kind must be "up", "down", or "share"`)
		return
	}

	counter, err := h.reactions.Increment(r.Context(), in.Slug, in.Kind)
	if err != nil {
		h.logger.Error("failed to record reaction",
			zap.String("slug", in.Slug),
			zap.String("kind", in.Kind),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not record reaction")
		return
	}

	jsonutil.OK(w, counter)
}
