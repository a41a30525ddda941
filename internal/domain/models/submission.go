// internal/domain/models/submission.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission modes for the business directory form.
const (
	SubmissionModeNew   = "new"   // Request to create a brand new directory entry
	SubmissionModeClaim = "claim" // Request to claim/update an existing listing
)

// Submission statuses. Transitions are driven only by admin moderation;
// re-applying the same transition is idempotent.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// AllSubmissionModes returns the valid submission modes.
func AllSubmissionModes() []string {
	return []string{SubmissionModeNew, SubmissionModeClaim}
}

// IsValidSubmissionMode checks if a mode is valid.
func IsValidSubmissionMode(mode string) bool {
	return mode == SubmissionModeNew || mode == SubmissionModeClaim
}

// IsValidSubmissionStatus checks if a status is one of pending/approved/rejected.
func IsValidSubmissionStatus(status string) bool {
	switch status {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

// BusinessSubmission is a public request to create or claim a directory entry.
// It is created by the public form with status forced to pending, and is only
// ever mutated by admin moderation. Rejection is a status flag, not removal.
type BusinessSubmission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessName string             `bson:"business_name" json:"business_name"`
	Mode         string             `bson:"mode" json:"mode"` // "new" or "claim"
	Category     string             `bson:"category" json:"category"`
	Status       string             `bson:"status" json:"status"`

	// Contact details for the submitter (not published)
	ContactName  string `bson:"contact_name" json:"contact_name"`
	ContactEmail string `bson:"contact_email" json:"contact_email"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`

	// For claims: the listing the submitter says is theirs
	LinkedListingID *primitive.ObjectID `bson:"linked_listing_id,omitempty" json:"linked_listing_id,omitempty"`

	// Business fields that flow into the published listing on approval
	Address    string   `bson:"address" json:"address"`
	Phone      string   `bson:"phone,omitempty" json:"phone,omitempty"`
	WebsiteURL string   `bson:"website_url,omitempty" json:"website_url,omitempty"`
	ImageURL   string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Audience   []string `bson:"audience,omitempty" json:"audience,omitempty"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`

	SubmittedAt time.Time  `bson:"submitted_at" json:"submitted_at"`
	ReviewedAt  *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
}
