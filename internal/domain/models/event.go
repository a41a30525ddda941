// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event audience ratings for community events.
const (
	EventAudienceFamily = "family"
	EventAudience18Plus = "18plus"
	EventAudience21Plus = "21plus"
)

// Event sources on the public calendar.
const (
	EventSourceCity      = "city"      // Pulled from the city calendar feed
	EventSourceCommunity = "community" // Approved community submission
)

// IsValidEventAudience checks the audience rating of an event submission.
func IsValidEventAudience(a string) bool {
	switch a {
	case EventAudienceFamily, EventAudience18Plus, EventAudience21Plus:
		return true
	}
	return false
}

// EventSubmission is a community-submitted calendar event awaiting review.
type EventSubmission struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	StartAt  time.Time          `bson:"start_at" json:"start_at"`
	EndAt    *time.Time         `bson:"end_at,omitempty" json:"end_at,omitempty"`
	Location string             `bson:"location" json:"location"`
	Audience string             `bson:"audience,omitempty" json:"audience,omitempty"`

	Cost          string   `bson:"cost,omitempty" json:"cost,omitempty"`
	Description   string   `bson:"description,omitempty" json:"description,omitempty"`
	Accessibility string   `bson:"accessibility,omitempty" json:"accessibility,omitempty"`
	URL           string   `bson:"url,omitempty" json:"url,omitempty"`
	Attachments   []string `bson:"attachments,omitempty" json:"attachments,omitempty"`

	ContactName  string `bson:"contact_name" json:"contact_name"`
	ContactEmail string `bson:"contact_email" json:"contact_email"`

	Status         string     `bson:"status" json:"status"` // pending/approved/rejected
	SubmittedAt    time.Time  `bson:"submitted_at" json:"submitted_at"`
	LastReviewedAt *time.Time `bson:"last_reviewed_at,omitempty" json:"last_reviewed_at,omitempty"`
}

// CityEvent is an event sourced from the city calendar feed. Rows are written
// only by the feed refresh and the seeder; the rest of the system treats them
// as read-only.
type CityEvent struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title    string             `bson:"title" json:"title"`
	StartAt  time.Time          `bson:"start_at" json:"start_at"`
	EndAt    *time.Time         `bson:"end_at,omitempty" json:"end_at,omitempty"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`

	Description string `bson:"description,omitempty" json:"description,omitempty"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
	ImageURL    string `bson:"image_url,omitempty" json:"image_url,omitempty"`

	// FeedKey identifies the event within the upstream feed so a refresh can
	// upsert instead of duplicating.
	FeedKey   string    `bson:"feed_key" json:"-"`
	FetchedAt time.Time `bson:"fetched_at" json:"-"`
}

// PublicEvent is the shape served by the public calendar endpoint: the union
// of city feed events and approved community events, tagged by source.
type PublicEvent struct {
	ID       string     `json:"id"`
	Source   string     `json:"source"` // "city" or "community"
	Title    string     `json:"title"`
	StartAt  time.Time  `json:"start_at"`
	EndAt    *time.Time `json:"end_at,omitempty"`
	Location string     `json:"location,omitempty"`
	Audience string     `json:"audience,omitempty"`
	Cost     string     `json:"cost,omitempty"`
	URL      string     `json:"url,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
}
