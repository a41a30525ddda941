// internal/domain/models/ad.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ad placement slots. Each names a fixed position in the site UI where zero
// or more ads may resolve; single-slot positions render the first match.
const (
	PlacementVisitLodging  = "visit_lodging"
	PlacementEventsTickets = "events_tickets"
	PlacementHomeSpotlight = "home_spotlight"
	PlacementDiningGuide   = "dining_guide"
	PlacementBlogInline    = "blog_inline"
)

// AllPlacements returns the known placement slots.
func AllPlacements() []string {
	return []string{
		PlacementVisitLodging,
		PlacementEventsTickets,
		PlacementHomeSpotlight,
		PlacementDiningGuide,
		PlacementBlogInline,
	}
}

// IsValidPlacement checks a placement key against the known slots.
func IsValidPlacement(p string) bool {
	for _, known := range AllPlacements() {
		if p == known {
			return true
		}
	}
	return false
}

// AffiliateAd is a placement-scoped promotional card managed by admins.
// Only active ads are eligible for placement lookup.
type AffiliateAd struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Subtitle   string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ButtonText string             `bson:"button_text,omitempty" json:"button_text,omitempty"`
	Link       string             `bson:"link" json:"link"`
	ImageURL   string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Placement  string             `bson:"placement" json:"placement"`
	Partner    string             `bson:"partner,omitempty" json:"partner,omitempty"`
	IsActive   bool               `bson:"is_active" json:"is_active"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// DisplayButtonText returns the button label with defaulting applied:
// the explicit text, else "Open {partner}", else "Open link".
func (a *AffiliateAd) DisplayButtonText() string {
	if a.ButtonText != "" {
		return a.ButtonText
	}
	if a.Partner != "" {
		return "Open " + a.Partner
	}
	return "Open link"
}
