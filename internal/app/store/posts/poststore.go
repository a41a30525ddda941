// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the blog_posts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new blog post store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("blog_posts")}
}

// GetBySlug returns a post by its slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	var p models.BlogPost
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		return models.BlogPost{}, err
	}
	return p, nil
}

// Save writes a post keyed by prevSlug: an edit that renames the slug
// updates the existing row in place. When no row matches prevSlug (or
// prevSlug is empty), the post is upserted under its current slug, which
// covers both brand-new posts and saves racing a deletion.
func (s *Store) Save(ctx context.Context, post models.BlogPost, prevSlug string) error {
	now := time.Now().UTC()
	post.UpdatedAt = &now

	set := bson.M{
		"slug":             post.Slug,
		"title":            post.Title,
		"category":         post.Category,
		"status":           post.Status,
		"body":             post.Body,
		"excerpt":          post.Excerpt,
		"meta_title":       post.MetaTitle,
		"meta_description": post.MetaDescription,
		"ad_embed_code":    post.AdEmbedCode,
		"published_at":     post.PublishedAt,
		"updated_at":       post.UpdatedAt,
	}

	if prevSlug != "" && prevSlug != post.Slug {
		res, err := s.c.UpdateOne(ctx, bson.M{"slug": prevSlug}, bson.M{"$set": set})
		if err != nil {
			return err
		}
		if res.MatchedCount > 0 {
			return nil
		}
		// Fall through: nothing under the old slug, upsert by the new one.
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"slug": post.Slug}, update, opts)
	return err
}

// Delete removes a post by slug.
func (s *Store) Delete(ctx context.Context, slug string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetPublished returns published posts, most recently published first.
func (s *Store) GetPublished(ctx context.Context, limit int64) ([]models.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, bson.M{"status": models.PostStatusPublished}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.BlogPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetAll returns every post, newest first. Used by the admin console.
func (s *Store) GetAll(ctx context.Context) ([]models.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.BlogPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
