// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	cityeventstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/cityevents"
	settingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/settings"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

//go:embed city_events.yaml
var cityEventsYAML []byte

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := seedSiteConfig(ctx, db, logger); err != nil {
		return err
	}
	if err := seedCityEvents(ctx, db, logger); err != nil {
		return err
	}
	return nil
}

// seedSiteConfig writes default config records for keys that have no value
// yet. Admin edits are never overwritten.
func seedSiteConfig(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := settingstore.New(db)

	defaults := []models.ConfigRecord{
		{
			Key: models.ConfigKeyHeroImages,
			HeroImages: &models.HeroImages{
				Images: []models.HeroImage{
					{Page: "home", ImageURL: "/static/img/hero-default.jpg", Alt: "Downtown White Plains"},
				},
			},
		},
		{
			Key: models.ConfigKeyPromoCard,
			PromoCard: &models.PromoCard{
				Enabled:    true,
				Title:      "Discover Local",
				Body:       "Browse the directory to find shops, restaurants, and services near you.",
				ButtonText: "Open the directory",
				Link:       "/businesses",
			},
		},
		{
			Key: models.ConfigKeyStartCards,
			StartCards: &models.StartCards{
				Cards: []models.StartCard{
					{Key: "eat-drink", Title: "Eat & Drink", Link: "/businesses?category=Eat+%26+Drink"},
					{Key: "events", Title: "Events", Link: "/events"},
					{Key: "submit", Title: "Submit Your Business", Link: "/submit"},
				},
			},
		},
	}

	for _, rec := range defaults {
		exists, err := store.Exists(ctx, rec.Key)
		if err != nil {
			logger.Error("failed to check config record",
				zap.String("key", rec.Key),
				zap.Error(err))
			return err
		}
		if !exists {
			if err := store.Upsert(ctx, rec); err != nil {
				logger.Error("failed to seed config record",
					zap.String("key", rec.Key),
					zap.Error(err))
				return err
			}
			logger.Info("seeded default config record", zap.String("key", rec.Key))
		}
	}

	return nil
}

type seedEvent struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"` // 2006-01-02 or RFC 3339
	Location string `yaml:"location"`
	URL      string `yaml:"url"`
}

// seedCityEvents loads the curated starter calendar on an empty install so
// the events page is not blank before the first feed refresh.
func seedCityEvents(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := cityeventstore.New(db)

	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var seeds []seedEvent
	if err := yaml.Unmarshal(cityEventsYAML, &seeds); err != nil {
		return fmt.Errorf("parse embedded city events: %w", err)
	}

	now := time.Now().UTC()
	seeded := 0
	for _, s := range seeds {
		startAt, ok := parseSeedDate(s.Date)
		if !ok {
			logger.Warn("skipping seed event with bad date",
				zap.String("title", s.Title),
				zap.String("date", s.Date))
			continue
		}
		ev := models.CityEvent{
			FeedKey:   fmt.Sprintf("seed|%s|%s", startAt.Format("2006-01-02"), s.Title),
			Title:     s.Title,
			StartAt:   startAt,
			Location:  s.Location,
			URL:       s.URL,
			FetchedAt: now,
		}
		if err := store.UpsertByFeedKey(ctx, ev); err != nil {
			logger.Error("failed to seed city event",
				zap.String("title", s.Title),
				zap.Error(err))
			return err
		}
		seeded++
	}

	logger.Info("seeded starter city events", zap.Int("count", seeded))
	return nil
}

func parseSeedDate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
