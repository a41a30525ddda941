// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	adstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/ads"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/feed"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/indexes"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/mailer"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/seeding"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/validators"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and builds the long-lived services the
// app depends on: the notification mailer, the city calendar feed
// fetcher, and the Prometheus metrics registry.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema
// and Startup. Clients are stored in the DBDeps struct for use in later
// lifecycle hooks and handlers.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	// Initialize email mailer for submission decision notifications
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)
	logger.Info("initialized email mailer",
		zap.String("host", appCfg.MailSMTPHost),
		zap.Int("port", appCfg.MailSMTPPort),
	)

	// Initialize the city calendar feed fetcher
	fetcher := feed.New(appCfg.CalendarFeedURL, logger)
	if fetcher.Enabled() {
		logger.Info("city calendar feed enabled", zap.String("url", appCfg.CalendarFeedURL))
	} else {
		logger.Info("city calendar feed disabled (no calendar_feed_url configured)")
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Mailer:        mail,
		Feed:          fetcher,
		Metrics:       metrics.New(),
	}, nil
}

// EnsureSchema sets up collections, validators, and indexes.
//
// This runs after ConnectDB succeeds but before Startup and before the
// HTTP handler is built. The context has a timeout based on
// coreCfg.IndexBootTimeout, so long-running work should respect
// context cancellation.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Ensure collections exist and attach JSON-Schema validators.
	// This runs first so indexes can be created on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	// Ensure database indexes for query performance.
	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	// Seed default site settings and demo content
	logger.Info("seeding default data")
	if err := seeding.SeedAll(ctx, db, logger); err != nil {
		logger.Error("failed to seed default data", zap.Error(err))
		return err
	}

	// Probe the ads collection once so placement lookups fail at boot, not
	// on the first public request.
	if err := adstore.New(db).Probe(ctx); err != nil {
		logger.Error("ads collection probe failed", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
