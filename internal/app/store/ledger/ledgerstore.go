// internal/app/store/ledger/ledgerstore.go
package ledgerstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thecityofwhiteplains/cityguide/internal/app/store/storeutil"
)

// Entry is one recorded API failure.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RequestID string             `bson:"request_id" json:"request_id"`

	Method string `bson:"method" json:"method"`
	Path   string `bson:"path" json:"path"`
	Query  string `bson:"query,omitempty" json:"query,omitempty"`

	RemoteIP  string `bson:"remote_ip,omitempty" json:"remote_ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty" json:"user_agent,omitempty"`

	StatusCode   int     `bson:"status_code" json:"status_code"`
	ErrorClass   string  `bson:"error_class,omitempty" json:"error_class,omitempty"`
	ErrorMessage string  `bson:"error_message,omitempty" json:"error_message,omitempty"`
	DurationMs   float64 `bson:"duration_ms" json:"duration_ms"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store provides access to the ledger_entries collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new ledger store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("ledger_entries")}
}

// Create inserts one entry.
func (s *Store) Create(ctx context.Context, e Entry) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// List returns entries newest first, optionally filtered to one status code.
func (s *Store) List(ctx context.Context, statusCode int, limit, page int64) ([]Entry, error) {
	filter := bson.M{}
	if statusCode > 0 {
		filter["status_code"] = statusCode
	}

	opts := storeutil.Paginate(limit, page).
		SetSort(storeutil.Newest("created_at"))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []Entry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
