// internal/app/store/analytics/analyticsstore.go
package analyticsstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/geo"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Top-N caps applied by the summary aggregations.
const (
	topRoutes    = 8
	topKinds     = 8
	topCountries = 12
	topPairs     = 12
)

// Store provides access to the analytics_events collection.
type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

// New creates a new analytics store.
func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{c: db.Collection("analytics_events"), log: log}
}

// Insert appends one event. Timestamp defaults to now when the client did
// not send one.
func (s *Store) Insert(ctx context.Context, ev models.AnalyticsEvent) error {
	ev.ID = primitive.NewObjectID()
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, ev)
	return err
}

// Summarize aggregates events in the inclusive [since, until] window.
//
// The summary degrades gracefully: if any sub-aggregation fails, its section
// is served empty and the failure is logged, so one broken pipeline does not
// take the whole dashboard down. If even the total count fails, a zero
// summary for the window is returned.
func (s *Store) Summarize(ctx context.Context, since, until time.Time) (models.AnalyticsSummary, error) {
	summary := models.AnalyticsSummary{
		Since:          since,
		Until:          until,
		ByKind:         map[string]int64{},
		Routes:         []models.KeyCount{},
		Kinds:          []models.KeyCount{},
		Countries:      []models.KeyCount{},
		RouteCountries: []models.PairCount{},
	}

	window := bson.M{
		"timestamp": bson.M{"$gte": since, "$lte": until},
	}

	total, err := s.c.CountDocuments(ctx, window)
	if err != nil {
		s.log.Warn("analytics total count failed, serving zero summary", zap.Error(err))
		return summary, nil
	}
	summary.Total = total
	if total == 0 {
		return summary, nil
	}

	if kinds, err := s.groupBy(ctx, window, "$name", topKinds); err != nil {
		s.log.Warn("analytics kinds aggregation failed", zap.Error(err))
	} else {
		summary.Kinds = kinds
		known := map[string]bool{}
		for _, k := range models.KnownAnalyticsKinds() {
			known[k] = true
			summary.ByKind[k] = 0
		}
		for _, kc := range kinds {
			if known[kc.Key] {
				summary.ByKind[kc.Key] = kc.Count
			}
		}
	}

	if routes, err := s.groupBy(ctx, window, "$route", topRoutes); err != nil {
		s.log.Warn("analytics routes aggregation failed", zap.Error(err))
	} else {
		summary.Routes = routes
	}

	if countries, err := s.groupCountries(ctx, window); err != nil {
		s.log.Warn("analytics countries aggregation failed", zap.Error(err))
	} else {
		summary.Countries = countries
	}

	if pairs, err := s.groupRouteCountries(ctx, window); err != nil {
		s.log.Warn("analytics route-country aggregation failed", zap.Error(err))
	} else {
		summary.RouteCountries = pairs
	}

	return summary, nil
}

// groupBy counts events grouped on a single field, descending, capped at n.
func (s *Store) groupBy(ctx context.Context, window bson.M, field string, n int) ([]models.KeyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: window}},
		{{Key: "$group", Value: bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: n}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.KeyCount
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	// Drop the bucket of events with no value for the field.
	filtered := out[:0]
	for _, kc := range out {
		if kc.Key != "" {
			filtered = append(filtered, kc)
		}
	}
	return filtered, nil
}

// groupCountries buckets page views by country code and resolves display
// names, keeping any client-provided name over the static table. Only
// page_view events count here; clicks and searches would skew the geography.
func (s *Store) groupCountries(ctx context.Context, window bson.M) ([]models.KeyCount, error) {
	match := bson.M{"name": models.AnalyticsPageView}
	for k, v := range window {
		match[k] = v
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$meta.country",
			"count": bson.M{"$sum": 1},
			"name":  bson.M{"$first": "$meta.country_name"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: topCountries}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Code  string `bson:"_id"`
		Count int64  `bson:"count"`
		Name  string `bson:"name"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.KeyCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.KeyCount{
			Key:   geo.CountryName(row.Code, row.Name),
			Count: row.Count,
		})
	}
	return out, nil
}

// groupRouteCountries buckets by (route, country) pairs.
func (s *Store) groupRouteCountries(ctx context.Context, window bson.M) ([]models.PairCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: window}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"route":   "$route",
				"country": "$meta.country",
			},
			"count": bson.M{"$sum": 1},
			"name":  bson.M{"$first": "$meta.country_name"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: topPairs}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID struct {
			Route   string `bson:"route"`
			Country string `bson:"country"`
		} `bson:"_id"`
		Count int64  `bson:"count"`
		Name  string `bson:"name"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make([]models.PairCount, 0, len(rows))
	for _, row := range rows {
		if row.ID.Route == "" {
			continue
		}
		out = append(out, models.PairCount{
			Route:   row.ID.Route,
			Country: geo.CountryName(row.ID.Country, row.Name),
			Count:   row.Count,
		})
	}
	return out, nil
}
