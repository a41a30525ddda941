// internal/domain/models/analytics.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Known analytics event kinds. Events with other names still count toward the
// grand total but are not bucketed in the summary.
const (
	AnalyticsPageView      = "page_view"
	AnalyticsOutboundClick = "outbound_click"
	AnalyticsAdClick       = "ad_click"
	AnalyticsReaction      = "reaction"
	AnalyticsSearch        = "search"
)

// KnownAnalyticsKinds returns the event kinds bucketed by the summary.
func KnownAnalyticsKinds() []string {
	return []string{
		AnalyticsPageView,
		AnalyticsOutboundClick,
		AnalyticsAdClick,
		AnalyticsReaction,
		AnalyticsSearch,
	}
}

// AnalyticsEvent is an append-only interaction record. Rows are never updated
// or deleted by this system; the summary endpoint only aggregates them.
type AnalyticsEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Route     string             `bson:"route" json:"route"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	// Meta carries free-form client context. Recognized keys:
	//   country      - ISO 3166-1 alpha-2 country code
	//   country_name - display name when the client resolved one
	//   client_id    - anonymous visitor id
	Meta map[string]any `bson:"meta,omitempty" json:"meta,omitempty"`
}

// AnalyticsSummary is the aggregation served to the admin dashboard.
type AnalyticsSummary struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`

	Total          int64            `json:"total"`
	ByKind         map[string]int64 `json:"by_kind"`         // Known kinds only
	Routes         []KeyCount       `json:"routes"`          // Top 8
	Kinds          []KeyCount       `json:"kinds"`           // Top 8
	Countries      []KeyCount       `json:"countries"`       // Top 12, display names
	RouteCountries []PairCount      `json:"route_countries"` // Top 12
}

// KeyCount is a single grouped count.
type KeyCount struct {
	Key   string `bson:"_id" json:"key"`
	Count int64  `bson:"count" json:"count"`
}

// PairCount is a grouped count over a (route, country) pair.
type PairCount struct {
	Route   string `json:"route"`
	Country string `json:"country"`
	Count   int64  `json:"count"`
}
