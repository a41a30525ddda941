// internal/app/store/listings/listingstore.go
package listingstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the business_listings collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new listing store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("business_listings")}
}

// GetByID returns a listing by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.BusinessListing, error) {
	var l models.BusinessListing
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		return models.BusinessListing{}, err
	}
	return l, nil
}

// GetBySlug returns a listing by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.BusinessListing, error) {
	var l models.BusinessListing
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&l)
	if err != nil {
		return models.BusinessListing{}, err
	}
	return l, nil
}

// GetBySourceSubmission returns the listing derived from the given
// submission, if one exists.
func (s *Store) GetBySourceSubmission(ctx context.Context, submissionID primitive.ObjectID) (models.BusinessListing, error) {
	var l models.BusinessListing
	err := s.c.FindOne(ctx, bson.M{"source_submission_id": submissionID}).Decode(&l)
	if err != nil {
		return models.BusinessListing{}, err
	}
	return l, nil
}

// Upsert creates or updates a listing by slug.
func (s *Store) Upsert(ctx context.Context, l models.BusinessListing) error {
	now := time.Now().UTC()
	l.UpdatedAt = &now

	filter := bson.M{"slug": l.Slug}
	update := bson.M{
		"$set": bson.M{
			"name":                 l.Name,
			"category":             l.Category,
			"price_level":          l.PriceLevel,
			"address":              l.Address,
			"phone":                l.Phone,
			"website_url":          l.WebsiteURL,
			"audience":             l.Audience,
			"tags":                 l.Tags,
			"image_url":            l.ImageURL,
			"is_published":         l.IsPublished,
			"source_submission_id": l.SourceSubmissionID,
			"updated_at":           l.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"slug":       l.Slug,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// SetPublished flips the publication flag on a listing.
// Returns mongo.ErrNoDocuments when no listing matches.
func (s *Store) SetPublished(ctx context.Context, id primitive.ObjectID, published bool) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_published": published,
			"updated_at":   now,
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

// GetPublished returns published listings, newest first, capped at limit.
func (s *Store) GetPublished(ctx context.Context, limit int64) ([]models.BusinessListing, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"is_published": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var listings []models.BusinessListing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
