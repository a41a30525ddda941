// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/feed"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/mailer"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It is the
// central place for clients and long-lived services the handlers need.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Mailer for submission decision notification emails
	Mailer *mailer.Mailer

	// Feed fetches the official city events calendar (disabled when no
	// calendar URL is configured)
	Feed *feed.Fetcher

	// Metrics holds the Prometheus registry and counters
	Metrics *metrics.Metrics
}
