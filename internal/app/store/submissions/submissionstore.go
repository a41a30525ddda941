// internal/app/store/submissions/submissionstore.go
package submissionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thecityofwhiteplains/cityguide/internal/app/store/storeutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

// Store provides access to the business_submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new business submission store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("business_submissions")}
}

// Create inserts a new submission. Status and SubmittedAt are forced here so
// the public form can never plant a pre-approved row.
func (s *Store) Create(ctx context.Context, sub models.BusinessSubmission) (primitive.ObjectID, error) {
	sub.ID = primitive.NewObjectID()
	sub.Status = models.SubmissionStatusPending
	sub.SubmittedAt = time.Now().UTC()
	sub.ReviewedAt = nil

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return primitive.NilObjectID, err
	}
	return sub.ID, nil
}

// GetByID returns a submission by its id.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.BusinessSubmission, error) {
	var sub models.BusinessSubmission
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if err != nil {
		return models.BusinessSubmission{}, err
	}
	return sub, nil
}

// SetStatus flips a submission's status and stamps ReviewedAt.
// Returns mongo.ErrNoDocuments when no submission matches.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	now := time.Now().UTC()
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":      status,
			"reviewed_at": now,
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

// ListByStatus returns submissions with the given status, newest first.
// An empty status returns all submissions.
func (s *Store) ListByStatus(ctx context.Context, status string, limit, page int64) ([]models.BusinessSubmission, error) {
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

	var subs []models.BusinessSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CountByStatus returns the number of submissions with the given status.
func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.c.CountDocuments(ctx, filter)
}
