// internal/app/store/settings/settingsstore.go
package settingstore

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

// Store provides access to the site_config collection. Each setting group is
// one typed document keyed by its group key.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_config")}
}

// Get returns the record for one setting group.
// Returns mongo.ErrNoDocuments when the group has no value yet.
func (s *Store) Get(ctx context.Context, key string) (models.ConfigRecord, error) {
	var rec models.ConfigRecord
	err := s.c.FindOne(ctx, bson.M{"key": key}).Decode(&rec)
	if err != nil {
		return models.ConfigRecord{}, err
	}
	return rec, nil
}

// Exists checks whether a setting group has a stored value.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"key": key})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert writes one setting group by key. The record's group field must
// match its key.
func (s *Store) Upsert(ctx context.Context, rec models.ConfigRecord) error {
	if !models.IsValidConfigKey(rec.Key) {
		return fmt.Errorf("unknown config key %q", rec.Key)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	switch rec.Key {
	case models.ConfigKeyHeroImages:
		if rec.HeroImages == nil {
			return fmt.Errorf("config record %q has no hero_images payload", rec.Key)
		}
		set["hero_images"] = rec.HeroImages
	case models.ConfigKeyPromoCard:
		if rec.PromoCard == nil {
			return fmt.Errorf("config record %q has no promo_card payload", rec.Key)
		}
		set["promo_card"] = rec.PromoCard
	case models.ConfigKeyStartCards:
		if rec.StartCards == nil {
			return fmt.Errorf("config record %q has no start_cards payload", rec.Key)
		}
		set["start_cards"] = rec.StartCards
	case models.ConfigKeySiteVerification:
		if rec.SiteVerification == nil {
			return fmt.Errorf("config record %q has no site_verification payload", rec.Key)
		}
		set["site_verification"] = rec.SiteVerification
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
			"key": rec.Key,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"key": rec.Key}, update, opts)
	return err
}

// GetSiteConfig assembles the public aggregate from all stored groups.
// Missing groups read as their zero value.
func (s *Store) GetSiteConfig(ctx context.Context) (models.SiteConfig, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return models.SiteConfig{}, err
	}
	defer cur.Close(ctx)

	var recs []models.ConfigRecord
	if err := cur.All(ctx, &recs); err != nil {
		return models.SiteConfig{}, err
	}

	var cfg models.SiteConfig
	for _, rec := range recs {
		switch {
		case rec.HeroImages != nil:
			cfg.HeroImages = *rec.HeroImages
		case rec.PromoCard != nil:
			cfg.PromoCard = *rec.PromoCard
		case rec.StartCards != nil:
			cfg.StartCards = *rec.StartCards
		case rec.SiteVerification != nil:
			cfg.SiteVerification = *rec.SiteVerification
		}
	}
	return cfg, nil
}
