// Package collectapi ingests lightweight analytics beacons from the public
// site. Events are append-only; aggregation happens on the admin side.
//
// Endpoint:
//   - POST /api/analytics/collect
package collectapi

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	analyticsstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/analytics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Caps on beacon fields. Oversized values are truncated, not rejected:
// a beacon endpoint should almost never bounce traffic.
const (
	maxNameLen  = 100
	maxRouteLen = 500
	maxMetaKeys = 20
)

// Handler handles analytics beacon requests.
type Handler struct {
	events  *analyticsstore.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewHandler creates a new collectapi handler.
func NewHandler(db *mongo.Database, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		events:  analyticsstore.New(db, logger),
		metrics: m,
		logger:  logger,
	}
}

type collectIn struct {
	Name  string         `json:"name"`
	Route string         `json:"route"`
	Meta  map[string]any `json:"meta"`
}

// CollectHandler handles POST /api/analytics/collect.
func (h *Handler) CollectHandler(w http.ResponseWriter, r *http.Request) {
	var in collectIn
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "Invalid JSON payload")
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		jsonutil.FieldError(w, "name", "Event name is required")
		return
	}
	if len(in.Name) > maxNameLen {
		in.Name = in.Name[:maxNameLen]
	}
	if len(in.Route) > maxRouteLen {
		in.Route = in.Route[:maxRouteLen]
	}
	if len(in.Meta) > maxMetaKeys {
		trimmed := make(map[string]any, maxMetaKeys)
		for k, v := range in.Meta {
			trimmed[k] = v
			if len(trimmed) == maxMetaKeys {
				break
			}
		}
		in.Meta = trimmed
	}

	ev := models.AnalyticsEvent{
		Name:      in.Name,
		Route:     in.Route,
		Timestamp: time.Now().UTC(),
		Meta:      in.Meta,
	}

	if err := h.events.Insert(r.Context(), ev); err != nil {
		h.logger.Error("failed to record analytics event",
			zap.String("name", in.Name),
			zap.Error(err))
		jsonutil.InternalError(w, "Could not record event")
		return
	}

	h.metrics.CountAnalyticsEvent()
	jsonutil.JSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}
