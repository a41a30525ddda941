// internal/app/store/reactions/reactionstore.go
package reactionstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the reaction_counters collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new reaction store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reaction_counters")}
}

// Increment bumps one counter for a slug atomically, creating the document
// on first reaction. Returns the updated tallies.
func (s *Store) Increment(ctx context.Context, slug, kind string) (models.ReactionCounter, error) {
	if !models.IsValidReactionKind(kind) {
		return models.ReactionCounter{}, fmt.Errorf("unknown reaction kind %q", kind)
	}

	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{kind: 1},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"_id":  primitive.NewObjectID(),
			"slug": slug,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.ReactionCounter
	err := s.c.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opts).Decode(&counter)
	if err != nil {
		return models.ReactionCounter{}, err
	}
	return counter, nil
}

// Get returns the tallies for a slug; a slug with no reactions yet reads as
// all zeros rather than an error.
func (s *Store) Get(ctx context.Context, slug string) (models.ReactionCounter, error) {
	var counter models.ReactionCounter
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&counter)
	if err == mongo.ErrNoDocuments {
		return models.ReactionCounter{Slug: slug}, nil
	}
	if err != nil {
		return models.ReactionCounter{}, err
	}
	return counter, nil
}
