// internal/domain/models/listing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessListing is the published, public-facing directory entry. Listings
// are derived from approved submissions (or created directly by an admin) and
// are addressed by a unique URL-safe slug.
type BusinessListing struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug     string             `bson:"slug" json:"slug"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`

	PriceLevel int      `bson:"price_level,omitempty" json:"price_level,omitempty"` // 1-4
	Address    string   `bson:"address" json:"address"`
	Phone      string   `bson:"phone,omitempty" json:"phone,omitempty"`
	WebsiteURL string   `bson:"website_url,omitempty" json:"website_url,omitempty"`
	Audience   []string `bson:"audience,omitempty" json:"audience,omitempty"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
	ImageURL   string   `bson:"image_url,omitempty" json:"image_url,omitempty"`

	IsPublished bool `bson:"is_published" json:"is_published"`

	// SourceSubmissionID links a derived listing back to the submission that
	// produced it, so a later rejection can retract exactly this listing even
	// if the business name (and therefore the derived slug) has changed.
	SourceSubmissionID *primitive.ObjectID `bson:"source_submission_id,omitempty" json:"source_submission_id,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Directory categories shown in the public submission form. The list is not
// enforced at the store level; unknown categories are kept as free text.
const (
	CategoryEatDrink = "Eat & Drink"
	CategoryShop     = "Shop"
	CategoryStay     = "Stay"
	CategoryPlay     = "Play"
	CategoryServices = "Services"
)

// AllCategories returns the categories offered in the submission form.
func AllCategories() []string {
	return []string{CategoryEatDrink, CategoryShop, CategoryStay, CategoryPlay, CategoryServices}
}
