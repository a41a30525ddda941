// internal/app/store/eventsubs/eventsubstore.go
package eventsubstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecityofwhiteplains/cityguide/internal/app/store/storeutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the event_submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new event submission store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("event_submissions")}
}

// Create inserts a new event submission. Status and SubmittedAt are forced
// here so the public form can never plant a pre-approved row.
func (s *Store) Create(ctx context.Context, sub models.EventSubmission) (primitive.ObjectID, error) {
	sub.ID = primitive.NewObjectID()
	sub.Status = models.SubmissionStatusPending
	sub.SubmittedAt = time.Now().UTC()
	sub.LastReviewedAt = nil

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return primitive.NilObjectID, err
	}
	return sub.ID, nil
}

// GetByID returns an event submission by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.EventSubmission, error) {
	var sub models.EventSubmission
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		return models.EventSubmission{}, err
	}
	return sub, nil
}

// SetStatus flips an event submission's status and stamps LastReviewedAt.
// Returns mongo.ErrNoDocuments when no submission matches.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":           status,
			"last_reviewed_at": now,
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

// ListByStatus returns event submissions with the given status, newest first.
// An empty status returns all submissions.
func (s *Store) ListByStatus(ctx context.Context, status string, limit, page int64) ([]models.EventSubmission, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := storeutil.Paginate(limit, page).
		SetSort(storeutil.Newest("submitted_at"))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.EventSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetApproved returns approved event submissions in start-date order.
// When from is non-zero, events starting before it are excluded.
func (s *Store) GetApproved(ctx context.Context, from time.Time, limit int64) ([]models.EventSubmission, error) {
	filter := bson.M{"status": models.SubmissionStatusApproved}
	if !from.IsZero() {
		filter["start_at"] = bson.M{"$gte": from}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var subs []models.EventSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CountByStatus returns the number of event submissions with the given status.
func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
