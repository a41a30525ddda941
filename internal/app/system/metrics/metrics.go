// Package metrics exposes Prometheus counters for the HTTP surface and the
// moderation pipeline, plus the /metrics scrape handler.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered for the service.
type Metrics struct {
	registry *prometheus.Registry

	reqTotal *prometheus.CounterVec
	reqDur   prometheus.Summary

	submissionsTotal *prometheus.CounterVec
	decisionsTotal   *prometheus.CounterVec
	collectTotal     prometheus.Counter
}

// New creates the collectors on a private registry so tests can build
// multiple instances without duplicate-registration panics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{registry: reg}

	m.reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityguide",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method and status",
	}, []string{"method", "status"})

	m.reqDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "cityguide",
		Name:      "http_request_duration_seconds",
		Help:      "Time spent serving HTTP requests",
	})

	m.submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityguide",
		Name:      "submissions_total",
		Help:      "Public submissions accepted, by kind",
	}, []string{"kind"})

	m.decisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cityguide",
		Name:      "moderation_decisions_total",
		Help:      "Moderation decisions, by kind and outcome",
	}, []string{"kind", "outcome"})

	m.collectTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cityguide",
		Name:      "analytics_events_total",
		Help:      "Analytics events recorded via the collect endpoint",
	})

	reg.MustRegister(
		m.reqTotal,
		m.reqDur,
		m.submissionsTotal,
		m.decisionsTotal,
		m.collectTotal,
	)

	return m
}

// Handler returns the /metrics scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts every request and records its duration.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.reqTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		m.reqDur.Observe(time.Since(start).Seconds())
	})
}

// CountSubmission records an accepted public submission ("business" or "event").
func (m *Metrics) CountSubmission(kind string) {
	m.submissionsTotal.WithLabelValues(kind).Inc()
}

// CountDecision records a moderation decision.
func (m *Metrics) CountDecision(kind, outcome string) {
	m.decisionsTotal.WithLabelValues(kind, outcome).Inc()
}

// CountAnalyticsEvent records one accepted analytics event.
func (m *Metrics) CountAnalyticsEvent() {
	m.collectTotal.Inc()
}
