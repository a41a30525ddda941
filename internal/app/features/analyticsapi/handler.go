// Package analyticsapi provides the admin analytics summary endpoint.
//
// Endpoint (Bearer key):
//   - GET /api/admin/analytics/summary?days=N
//   - GET /api/admin/analytics/summary?start=YYYY-MM-DD&end=YYYY-MM-DD
package analyticsapi

import (
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	analyticsstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/analytics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/jsonutil"
)

// defaultDays is the window when neither days nor start/end is given.
const defaultDays = 30

// maxDays bounds the days parameter; longer ranges use explicit start/end.
const maxDays = 365

// Handler handles admin analytics requests.
type Handler struct {
	analytics *analyticsstore.Store
	logger    *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewHandler creates a new analyticsapi handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		analytics: analyticsstore.New(db, logger),
		logger:    logger,
		now:       time.Now,
	}
}

// SummaryHandler handles GET /api/admin/analytics/summary.
//
// Window selection: explicit start/end dates win over days. Bounds are
// inclusive on both ends; a start/end date covers that whole day.
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	since, until, err := h.window(r)
	if err != nil {
		jsonutil.BadRequest(w, err.Error())
		return
	}

	summary, err := h.analytics.Summarize(r.Context(), since, until)
	if err != nil {
		h.logger.Error("analytics summary failed", zap.Error(err))
		jsonutil.InternalError(w, "Could not build summary")
		return
	}

	jsonutil.OK(w, summary)
}

// windowError is a request-shaped error with a client-safe message.
type windowError string

func (e windowError) Error() string { return string(e) }

func (h *Handler) window(r *http.Request) (since, until time.Time, err error) {
	q := r.URL.Query()
	startRaw, endRaw := q.Get("start"), q.Get("end")

	if startRaw != "" || endRaw != "" {
		if startRaw == "" || endRaw == "" {
			return since, until, windowError("start and end must be given together")
		}
		start, perr := time.Parse("2006-01-02", startRaw)
		if perr != nil {
			return since, until, windowError("start must be a YYYY-MM-DD date")
		}
		end, perr := time.Parse("2006-01-02", endRaw)
		if perr != nil {
			return since, until, windowError("end must be a YYYY-MM-DD date")
		}
		if end.Before(start) {
			return since, until, windowError("end must not be before start")
		}
		// The end date covers its whole day.
		return start, end.Add(24*time.Hour - time.Nanosecond), nil
	}

	days := int64(defaultDays)
	if raw := q.Get("days"); raw != "" {
		days, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || days < 1 || days > maxDays {
			return since, until, windowError("days must be a whole number between 1 and 365")
		}
	}

	until = h.now().UTC()
	since = until.AddDate(0, 0, -int(days))
	return since, until, nil
}
