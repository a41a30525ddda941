// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin console roles.
const (
	RoleAdmin  = "admin"  // Full access: moderation, ads, posts, settings, users
	RoleEditor = "editor" // Moderation and content only
)

// Admin account statuses.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// AdminUser is a staff account for the admin console. Visitors are anonymous;
// only console users have accounts.
type AdminUser struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName string             `bson:"full_name" json:"full_name"`
	Email    string             `bson:"email" json:"email"` // Lowercased, unique

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Role   string `bson:"role" json:"role"`
	Status string `bson:"status" json:"status"`

	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}

// IsActive reports whether the account may sign in.
func (u *AdminUser) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsValidRole checks a console role.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
