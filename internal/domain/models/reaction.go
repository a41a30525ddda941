// internal/domain/models/reaction.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reaction kinds accepted by the reactions endpoint.
const (
	ReactionUp    = "up"
	ReactionDown  = "down"
	ReactionShare = "share"
)

// IsValidReactionKind checks a reaction kind.
func IsValidReactionKind(kind string) bool {
	switch kind {
	case ReactionUp, ReactionDown, ReactionShare:
		return true
	}
	return false
}

// ReactionCounter holds the up/down/share tallies for one content slug.
type ReactionCounter struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Slug  string             `bson:"slug" json:"slug"`
	Up    int64              `bson:"up" json:"up"`
	Down  int64              `bson:"down" json:"down"`
	Share int64              `bson:"share" json:"share"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"-"`
}
