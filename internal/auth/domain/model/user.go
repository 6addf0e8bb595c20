package model

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles known to the system. Capability checks are role-equality for now; a
// role can grow into a capability set without changing callers.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Model-level validation errors
var (
	ErrUsernameRequired = errors.New("username is required")
	ErrInvalidRole      = errors.New("invalid role")
)

// User represents an account that can manage redirects.
type User struct {
	ID           string             `json:"id" bson:"id,omitempty"`
	ObjectID     primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         string             `json:"role" bson:"role"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasCapability reports whether the user's role grants the named capability.
func (u *User) HasCapability(capability string) bool {
	if u == nil {
		return false
	}
	return u.Role == capability
}

// IsAdmin is a convenience wrapper for the admin capability.
func (u *User) IsAdmin() bool {
	return u.HasCapability(RoleAdmin)
}

// ValidateFields checks structural invariants before persistence.
func (u *User) ValidateFields() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrUsernameRequired
	}
	switch u.Role {
	case RoleAdmin, RoleUser:
		return nil
	default:
		return ErrInvalidRole
	}
}
