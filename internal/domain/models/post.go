// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// IsValidPostStatus checks a blog post status.
func IsValidPostStatus(status string) bool {
	return status == PostStatusDraft || status == PostStatusPublished
}

// BlogPost is an article on the guide's blog. The slug is unique; editing
// keeps the original slug unless the editor explicitly changes it, in which
// case the save upserts by the previous slug and falls back to the new slug
// when no row matched.
type BlogPost struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Slug     string             `bson:"slug" json:"slug"`
	Title    string             `bson:"title" json:"title"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Status   string             `bson:"status" json:"status"` // draft/published

	Body    string `bson:"body" json:"body"` // Sanitized HTML
	Excerpt string `bson:"excerpt,omitempty" json:"excerpt,omitempty"`

	// SEO meta fields
	MetaTitle       string `bson:"meta_title,omitempty" json:"meta_title,omitempty"`
	MetaDescription string `bson:"meta_description,omitempty" json:"meta_description,omitempty"`

	// Optional ad embed snippet rendered inside the article body
	AdEmbedCode string `bson:"ad_embed_code,omitempty" json:"ad_embed_code,omitempty"`

	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
