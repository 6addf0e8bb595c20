package repository

import (
	"context"

	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// SessionRepository defines the interface for session persistence. The store
// owns durability only; validity (expiry) is decided by the caller at read time.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteSession removes a session record. Deleting an absent token is not
	// an error.
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID string) error
}
