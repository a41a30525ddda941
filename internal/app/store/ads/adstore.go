// internal/app/store/ads/adstore.go
package adstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the affiliate_ads collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new ad store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("affiliate_ads")}
}

// Create inserts a new ad.
func (s *Store) Create(ctx context.Context, ad models.AffiliateAd) (primitive.ObjectID, error) {
	ad.ID = primitive.NewObjectID()
	ad.CreatedAt = time.Now().UTC()
	ad.UpdatedAt = nil

	if _, err := s.c.InsertOne(ctx, ad); err != nil {
		return primitive.NilObjectID, err
	}
	return ad.ID, nil
}

// GetByID returns an ad by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.AffiliateAd, error) {
	var ad models.AffiliateAd
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ad)
	if err != nil {
		return models.AffiliateAd{}, err
	}
	return ad, nil
}

// Update replaces the editable fields of an ad.
// Returns mongo.ErrNoDocuments when no ad matches.
func (s *Store) Update(ctx context.Context, ad models.AffiliateAd) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": ad.ID},
		bson.M{"$set": bson.M{
			"title":       ad.Title,
			"subtitle":    ad.Subtitle,
			"button_text": ad.ButtonText,
			"link":        ad.Link,
			"image_url":   ad.ImageURL,
			"placement":   ad.Placement,
			"partner":     ad.Partner,
			"is_active":   ad.IsActive,
			"updated_at":  now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an ad.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetActiveByPlacements returns active ads whose placement is in the given
// set, newest first. Inactive ads never leave the store.
func (s *Store) GetActiveByPlacements(ctx context.Context, placements []string) ([]models.AffiliateAd, error) {
	if len(placements) == 0 {
		return []models.AffiliateAd{}, nil
	}

	filter := bson.M{
		"placement": bson.M{"$in": placements},
		"is_active": true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ads []models.AffiliateAd
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// GetAll returns every ad, newest first. Used by the admin console.
func (s *Store) GetAll(ctx context.Context) ([]models.AffiliateAd, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ads []models.AffiliateAd
	if err := cur.All(ctx, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

// Probe runs a cheap read against the collection. Startup calls this once so
// a schema or connectivity problem surfaces at boot instead of on the first
// public placement request.
func (s *Store) Probe(ctx context.Context) error {
	err := s.c.FindOne(ctx, bson.M{}).Err()
	if err == mongo.ErrNoDocuments {
		return nil
	}
	return err
}
