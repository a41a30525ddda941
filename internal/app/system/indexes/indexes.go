// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureBusinessSubmissions(ctx, db); err != nil {
		problems = append(problems, "business_submissions: "+err.Error())
	}
	if err := ensureBusinessListings(ctx, db); err != nil {
		problems = append(problems, "business_listings: "+err.Error())
	}
	if err := ensureEventSubmissions(ctx, db); err != nil {
		problems = append(problems, "event_submissions: "+err.Error())
	}
	if err := ensureCityEvents(ctx, db); err != nil {
		problems = append(problems, "city_events: "+err.Error())
	}
	if err := ensureAffiliateAds(ctx, db); err != nil {
		problems = append(problems, "affiliate_ads: "+err.Error())
	}
	if err := ensureBlogPosts(ctx, db); err != nil {
		problems = append(problems, "blog_posts: "+err.Error())
	}
	if err := ensureReactionCounters(ctx, db); err != nil {
		problems = append(problems, "reaction_counters: "+err.Error())
	}
	if err := ensureAnalyticsEvents(ctx, db); err != nil {
		problems = append(problems, "analytics_events: "+err.Error())
	}
	if err := ensureSiteConfig(ctx, db); err != nil {
		problems = append(problems, "site_config: "+err.Error())
	}
	if err := ensureLedgerEntries(ctx, db); err != nil {
		problems = append(problems, "ledger_entries: "+err.Error())
	}
	if err := ensureRateLimits(ctx, db); err != nil {
		problems = append(problems, "rate_limits: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			defer cur.Close(ctx)
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Bool("unique", ex.Unique != nil && *ex.Unique),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		if created, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed (options conflict)",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		} else {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("created_name", created),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
	})
}

func ensureBusinessSubmissions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("business_submissions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Moderation queue: pending first, newest first
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "submitted_at", Value: -1},
			},
			Options: options.Index().SetName("idx_bsub_status_submitted"),
		},
	})
}

func ensureBusinessListings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("business_listings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "slug", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_blist_slug"),
		},
		// Re-approval path looks listings up by their source submission
		{
			Keys: bson.D{
				{Key: "source_submission_id", Value: 1},
			},
			Options: options.Index().SetSparse(true).SetName("idx_blist_source_submission"),
		},
		// Public directory: published, newest first
		{
			Keys: bson.D{
				{Key: "is_published", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_blist_published_created"),
		},
	})
}

func ensureEventSubmissions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("event_submissions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "submitted_at", Value: -1},
			},
			Options: options.Index().SetName("idx_esub_status_submitted"),
		},
		// Calendar read path: approved events in date order
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "start_at", Value: 1},
			},
			Options: options.Index().SetName("idx_esub_status_start"),
		},
	})
}

func ensureCityEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("city_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Feed refresh upserts by feed_key
		{
			Keys: bson.D{
				{Key: "feed_key", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_cityevents_feedkey"),
		},
		{
			Keys: bson.D{
				{Key: "start_at", Value: 1},
			},
			Options: options.Index().SetName("idx_cityevents_start"),
		},
	})
}

func ensureAffiliateAds(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("affiliate_ads")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Placement resolution: active ads for a placement, newest first
		{
			Keys: bson.D{
				{Key: "placement", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_ads_placement_active_created"),
		},
	})
}

func ensureBlogPosts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("blog_posts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "slug", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_posts_slug"),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "published_at", Value: -1},
			},
			Options: options.Index().SetName("idx_posts_status_published"),
		},
	})
}

func ensureReactionCounters(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("reaction_counters")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "slug", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_reactions_slug"),
		},
	})
}

func ensureAnalyticsEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("analytics_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Summary aggregations filter by time window first
		{
			Keys: bson.D{
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_analytics_timestamp"),
		},
		{
			Keys: bson.D{
				{Key: "timestamp", Value: -1},
				{Key: "name", Value: 1},
			},
			Options: options.Index().SetName("idx_analytics_timestamp_name"),
		},
	})
}

func ensureSiteConfig(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("site_config")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "key", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_siteconfig_key"),
		},
	})
}

func ensureLedgerEntries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("ledger_entries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_ledger_created"),
		},
		{
			Keys: bson.D{
				{Key: "status_code", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_ledger_status_created"),
		},
	})
}

func ensureRateLimits(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("rate_limits")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_ratelimits_email"),
		},
		// TTL cleanup of stale windows
		{
			Keys: bson.D{
				{Key: "last_attempt", Value: 1},
			},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("ttl_ratelimits_last_attempt"),
		},
	})
}
