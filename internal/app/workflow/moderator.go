// Package workflow implements the moderation state machine: admin decisions
// on business and event submissions, and the listing derivation/retraction
// that follows from them.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventsubstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/eventsubs"
	listingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/listings"
	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/slug"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/txn"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
)

var (
	// ErrInvalidID is returned for ids that cannot name a submission: empty
	// strings, the literal "undefined" a broken client serializes, or
	// malformed hex. Nothing is read or written for these.
	ErrInvalidID = errors.New("invalid submission id")

	// ErrNotFound is returned when the id is well-formed but no submission
	// has it.
	ErrNotFound = errors.New("submission not found")

	// ErrBadStatus is returned for a decision that is not approved/rejected.
	ErrBadStatus = errors.New("status must be approved or rejected")
)

// Notifier delivers moderation outcome emails. Sends are best-effort: a
// failed notification never rolls back a decision.
type Notifier interface {
	BusinessApproved(ctx context.Context, sub models.BusinessSubmission, listing models.BusinessListing)
	BusinessRejected(ctx context.Context, sub models.BusinessSubmission, reason string)
	EventDecision(ctx context.Context, sub models.EventSubmission, approved bool, reason string)
}

// Moderator applies admin decisions to submissions.
type Moderator struct {
	db          *mongo.Database
	submissions *submissionstore.Store
	listings    *listingstore.Store
	events      *eventsubstore.Store
	notifier    Notifier
	log         *zap.Logger
}

// New creates a Moderator. notifier may be nil to disable emails.
func New(db *mongo.Database, notifier Notifier, log *zap.Logger) *Moderator {
	return &Moderator{
		db:          db,
		submissions: submissionstore.New(db),
		listings:    listingstore.New(db),
		events:      eventsubstore.New(db),
		notifier:    notifier,
		log:         log,
	}
}

// ParseID converts a raw path or body value into an ObjectID, refusing the
// sentinel junk ("", "undefined", "null") misbehaving clients send before any
// store call happens.
func ParseID(raw string) (primitive.ObjectID, error) {
	switch raw {
	case "", "undefined", "null":
		return primitive.NilObjectID, ErrInvalidID
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// ApproveBusiness marks a submission approved and derives (or republishes)
// its listing. The status flip and the listing upsert commit together.
//
// Approval is idempotent: re-approving a submission republishes the same
// listing rather than minting a second one, even if the business name has
// changed since the first approval.
func (m *Moderator) ApproveBusiness(ctx context.Context, id primitive.ObjectID) (models.BusinessListing, error) {
	var listing models.BusinessListing

	err := txn.Run(ctx, m.db, m.log, func(ctx context.Context) error {
		sub, err := m.submissions.GetByID(ctx, id)
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := m.submissions.SetStatus(ctx, id, models.SubmissionStatusApproved); err != nil {
			return err
		}

		listing, err = m.deriveListing(ctx, sub)
		return err
	})
	if err != nil {
		return models.BusinessListing{}, err
	}

	if m.notifier != nil {
		sub, subErr := m.submissions.GetByID(ctx, id)
		if subErr == nil {
			m.notifier.BusinessApproved(ctx, sub, listing)
		}
	}

	m.log.Info("business submission approved",
		zap.String("submission_id", id.Hex()),
		zap.String("listing_slug", listing.Slug))

	return listing, nil
}

// RejectBusiness marks a submission rejected and retracts the listing it
// produced, if any. The submission row itself is kept.
func (m *Moderator) RejectBusiness(ctx context.Context, id primitive.ObjectID, reason string) error {
	var retractedSlug string

	err := txn.Run(ctx, m.db, m.log, func(ctx context.Context) error {
		if _, err := m.submissions.GetByID(ctx, id); err == mongo.ErrNoDocuments {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		if err := m.submissions.SetStatus(ctx, id, models.SubmissionStatusRejected); err != nil {
			return err
		}

		// The source-submission link finds the listing even when the business
		// name (and so the derived slug) changed after approval.
		listing, err := m.listings.GetBySourceSubmission(ctx, id)
		if err == mongo.ErrNoDocuments {
			return nil // never approved, nothing to retract
		}
		if err != nil {
			return err
		}

		retractedSlug = listing.Slug
		return m.listings.SetPublished(ctx, listing.ID, false)
	})
	if err != nil {
		return err
	}

	if m.notifier != nil {
		sub, subErr := m.submissions.GetByID(ctx, id)
		if subErr == nil {
			m.notifier.BusinessRejected(ctx, sub, reason)
		}
	}

	m.log.Info("business submission rejected",
		zap.String("submission_id", id.Hex()),
		zap.String("retracted_slug", retractedSlug))

	return nil
}

// DecideBusiness routes a status string to the matching transition and
// returns the updated submission. On approval the derived listing comes back
// too; on rejection it is nil.
func (m *Moderator) DecideBusiness(ctx context.Context, id primitive.ObjectID, status, reason string) (models.BusinessSubmission, *models.BusinessListing, error) {
	var listing *models.BusinessListing

	switch status {
	case models.SubmissionStatusApproved:
		derived, err := m.ApproveBusiness(ctx, id)
		if err != nil {
			return models.BusinessSubmission{}, nil, err
		}
		listing = &derived
	case models.SubmissionStatusRejected:
		if err := m.RejectBusiness(ctx, id, reason); err != nil {
			return models.BusinessSubmission{}, nil, err
		}
	default:
		return models.BusinessSubmission{}, nil, ErrBadStatus
	}

	sub, err := m.submissions.GetByID(ctx, id)
	if err != nil {
		return models.BusinessSubmission{}, nil, err
	}
	return sub, listing, nil
}

// DecideEvent applies an approve/reject decision to a community event
// submission and returns the updated row. Approved events appear on the
// public calendar; rejected ones keep their row with the rejected flag.
// The notification email goes out only when sendEmail is set.
func (m *Moderator) DecideEvent(ctx context.Context, id primitive.ObjectID, status, reason string, sendEmail bool) (models.EventSubmission, error) {
	if status != models.SubmissionStatusApproved && status != models.SubmissionStatusRejected {
		return models.EventSubmission{}, ErrBadStatus
	}

	if _, err := m.events.GetByID(ctx, id); err == mongo.ErrNoDocuments {
		return models.EventSubmission{}, ErrNotFound
	} else if err != nil {
		return models.EventSubmission{}, err
	}

	if err := m.events.SetStatus(ctx, id, status); err != nil {
		return models.EventSubmission{}, err
	}

	sub, err := m.events.GetByID(ctx, id)
	if err != nil {
		return models.EventSubmission{}, err
	}

	if sendEmail && m.notifier != nil {
		m.notifier.EventDecision(ctx, sub, status == models.SubmissionStatusApproved, reason)
	}

	m.log.Info("event submission decided",
		zap.String("submission_id", id.Hex()),
		zap.String("status", status),
		zap.Bool("send_email", sendEmail))

	return sub, nil
}

// deriveListing publishes the listing for an approved submission.
//
// Slug assignment: a listing already derived from this submission keeps its
// slug. Otherwise the name's slug is probed for collisions and suffixed
// ("name", "name-2", "name-3", ...) until a free slug, or one owned by this
// submission, is found.
func (m *Moderator) deriveListing(ctx context.Context, sub models.BusinessSubmission) (models.BusinessListing, error) {
	listing := models.BusinessListing{
		Name:               sub.BusinessName,
		Category:           sub.Category,
		Address:            sub.Address,
		Phone:              sub.Phone,
		WebsiteURL:         sub.WebsiteURL,
		Audience:           sub.Audience,
		Tags:               sub.Tags,
		ImageURL:           sub.ImageURL,
		IsPublished:        true,
		SourceSubmissionID: &sub.ID,
	}

	// Re-approval: reuse the listing this submission already produced.
	if existing, err := m.listings.GetBySourceSubmission(ctx, sub.ID); err == nil {
		listing.Slug = existing.Slug
	} else if err != mongo.ErrNoDocuments {
		return models.BusinessListing{}, err
	} else {
		assigned, err := m.assignSlug(ctx, sub)
		if err != nil {
			return models.BusinessListing{}, err
		}
		listing.Slug = assigned
	}

	if err := m.listings.Upsert(ctx, listing); err != nil {
		return models.BusinessListing{}, err
	}

	return m.listings.GetBySlug(ctx, listing.Slug)
}

func (m *Moderator) assignSlug(ctx context.Context, sub models.BusinessSubmission) (string, error) {
	base := slug.Make(sub.BusinessName)
	if base == "" {
		base = slug.MakeOrPlaceholder(sub.BusinessName, time.Now())
	}

	for n := 1; ; n++ {
		candidate := slug.WithSuffix(base, n)

		owner, err := m.listings.GetBySlug(ctx, candidate)
		if err == mongo.ErrNoDocuments {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		if owner.SourceSubmissionID != nil && *owner.SourceSubmissionID == sub.ID {
			return candidate, nil
		}
		if n > 500 {
			return "", fmt.Errorf("could not assign a slug for %q", sub.BusinessName)
		}
	}
}
