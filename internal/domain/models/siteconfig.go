// internal/domain/models/siteconfig.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Site configuration is stored as explicit typed records, one document per
// setting group keyed by a fixed group key, with upsert-by-key semantics.
// This replaces the serialized-blob-in-a-column pattern: each group has a
// real schema and decodes directly into its struct.

// Setting group keys.
const (
	ConfigKeyHeroImages       = "hero_images"
	ConfigKeyPromoCard        = "promo_card"
	ConfigKeyStartCards       = "start_cards"
	ConfigKeySiteVerification = "site_verification"
)

// AllConfigKeys returns the known setting group keys.
func AllConfigKeys() []string {
	return []string{
		ConfigKeyHeroImages,
		ConfigKeyPromoCard,
		ConfigKeyStartCards,
		ConfigKeySiteVerification,
	}
}

// IsValidConfigKey checks a setting group key.
func IsValidConfigKey(key string) bool {
	for _, k := range AllConfigKeys() {
		if key == k {
			return true
		}
	}
	return false
}

// HeroImage is a per-page hero banner image.
type HeroImage struct {
	Page     string `bson:"page" json:"page"` // e.g. "home", "visit", "events"
	ImageURL string `bson:"image_url" json:"image_url"`
	Alt      string `bson:"alt,omitempty" json:"alt,omitempty"`
}

// HeroImages is the hero_images setting group.
type HeroImages struct {
	Images []HeroImage `bson:"images" json:"images"`
}

// PromoCard is the promo_card setting group: the configurable promotional
// card shown on the home page.
type PromoCard struct {
	Enabled    bool   `bson:"enabled" json:"enabled"`
	Title      string `bson:"title" json:"title"`
	Body       string `bson:"body,omitempty" json:"body,omitempty"`
	ButtonText string `bson:"button_text,omitempty" json:"button_text,omitempty"`
	Link       string `bson:"link,omitempty" json:"link,omitempty"`
	ImageURL   string `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// StartCard is one entry of the start_cards setting group (the quick-start
// tiles on the home page).
type StartCard struct {
	Key      string `bson:"key" json:"key"`
	Title    string `bson:"title" json:"title"`
	ImageURL string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Link     string `bson:"link" json:"link"`
}

// StartCards is the start_cards setting group.
type StartCards struct {
	Cards []StartCard `bson:"cards" json:"cards"`
}

// SiteVerification is the site_verification setting group: search-engine
// ownership verification snippets injected into page heads by the frontend.
type SiteVerification struct {
	Provider string `bson:"provider,omitempty" json:"provider,omitempty"`
	Snippet  string `bson:"snippet,omitempty" json:"snippet,omitempty"`
}

// ConfigRecord is the persisted envelope for one setting group.
type ConfigRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	UpdatedAt time.Time          `bson:"updated_at"`

	// Exactly one of the group fields is set, matching Key.
	HeroImages       *HeroImages       `bson:"hero_images,omitempty"`
	PromoCard        *PromoCard        `bson:"promo_card,omitempty"`
	StartCards       *StartCards       `bson:"start_cards,omitempty"`
	SiteVerification *SiteVerification `bson:"site_verification,omitempty"`
}

// SiteConfig is the public aggregate served to the frontend.
type SiteConfig struct {
	HeroImages       HeroImages       `json:"hero_images"`
	PromoCard        PromoCard        `json:"promo_card"`
	StartCards       StartCards       `json:"start_cards"`
	SiteVerification SiteVerification `json:"site_verification"`
}
