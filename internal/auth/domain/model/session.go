package model

import "time"

// Session represents a bearer session. The token is an opaque high-entropy
// string; a session authenticates its user until ExpiresAt.
type Session struct {
	Token      string    `json:"token" bson:"token"`
	UserID     string    `json:"user_id" bson:"user_id"`
	ExpiresAt  time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Persistent bool      `json:"persistent" bson:"persistent"`
}

// Expired reports whether the session is past its expiry at the given instant.
// Expiry is checked lazily at read time; expired records are never mutated here.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
