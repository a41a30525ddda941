// internal/app/store/cityevents/cityeventstore.go
package cityeventstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the city_events collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new city event store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("city_events")}
}

// UpsertByFeedKey creates or updates an event by its feed key, so repeated
// refreshes track upstream edits instead of duplicating rows.
func (s *Store) UpsertByFeedKey(ctx context.Context, ev models.CityEvent) error {
	filter := bson.M{"feed_key": ev.FeedKey}
	update := bson.M{
		"$set": bson.M{
			"title":       ev.Title,
			"start_at":    ev.StartAt,
			"end_at":      ev.EndAt,
			"location":    ev.Location,
			"description": ev.Description,
			"url":         ev.URL,
			"image_url":   ev.ImageURL,
			"fetched_at":  ev.FetchedAt,
		},
		"$setOnInsert": bson.M{
			"_id":      primitive.NewObjectID(),
			"feed_key": ev.FeedKey,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetUpcoming returns events in start-date order. When from is non-zero,
// events starting before it are excluded.
func (s *Store) GetUpcoming(ctx context.Context, from time.Time, limit int64) ([]models.CityEvent, error) {
	filter := bson.M{}
	if !from.IsZero() {
		filter["start_at"] = bson.M{"$gte": from}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.CityEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of city events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
