package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agniveshadhikari/slinky/internal/auth/config"
	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	"github.com/agniveshadhikari/slinky/internal/auth/domain/repository"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPasswordRequired   = errors.New("password is required")
)

// AuthUsecaseInterface defines the contract for authentication and session
// management.
type AuthUsecaseInterface interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	CreateSession(ctx context.Context, userID string, persist bool) (string, time.Time, error)
	ResolveSession(ctx context.Context, token string) *model.User
	InvalidateSession(ctx context.Context, token string) error
	CreateUser(ctx context.Context, username, role string) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, password string) error
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
}

// AuthUsecase implements authentication and session management. Sessions are
// opaque bearer tokens validated against shared storage on every call, so any
// instance can resolve any token.
type AuthUsecase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	config   *config.Config
	log      logger.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	cfg *config.Config,
	log logger.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		sessions: sessions,
		config:   cfg,
		log:      log.WithComponent("auth_usecase"),
	}
}

// Authenticate verifies a username/password pair. Unknown users and wrong
// passwords are indistinguishable to the caller: both return
// ErrInvalidCredentials.
func (uc *AuthUsecase) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := uc.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateSession generates a high-entropy token, persists it with the expiry
// for the requested lifetime (30 days when persist, 1 day otherwise) and
// returns both.
func (uc *AuthUsecase) CreateSession(ctx context.Context, userID string, persist bool) (string, time.Time, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	ttl := uc.config.SessionTTL
	if persist {
		ttl = uc.config.PersistentSessionTTL
	}

	now := time.Now().UTC()
	session := &model.Session{
		Token:      token,
		UserID:     userID,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		Persistent: persist,
	}

	if err := uc.sessions.CreateSession(ctx, session); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return token, session.ExpiresAt, nil
}

// ResolveSession maps a session token to its user. An empty, unknown or
// expired token resolves to nil (anonymous), never an error; expiry is checked
// lazily with no read-time mutation. Storage failures also degrade to
// anonymous so the request surface stays available.
func (uc *AuthUsecase) ResolveSession(ctx context.Context, token string) *model.User {
	if token == "" {
		return nil
	}

	session, err := uc.sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			uc.log.WithContext(ctx).Errorf("session lookup failed: %v", err)
		}
		return nil
	}

	if session.Expired(time.Now().UTC()) {
		return nil
	}

	user, err := uc.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			uc.log.WithContext(ctx).Errorf("user lookup for session failed: %v", err)
		}
		return nil
	}

	return user
}

// InvalidateSession deletes the session record. Invalidating a token that is
// already gone is not an error.
func (uc *AuthUsecase) InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CreateUser creates an account with no usable password; the invited user sets
// one through the reset flow. Defaults the role to "user".
func (uc *AuthUsecase) CreateUser(ctx context.Context, username, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if role == "" {
		role = model.RoleUser
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.ValidateFields(); err != nil {
		return nil, err
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("created user %s with role %s", user.Username, user.Role)
	return user, nil
}

// UpdatePassword hashes and stores a new password for the user.
func (uc *AuthUsecase) UpdatePassword(ctx context.Context, userID, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := uc.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID.
func (uc *AuthUsecase) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}
	return uc.users.GetUserByID(ctx, userID)
}

// Ensure AuthUsecase implements AuthUsecaseInterface
var _ AuthUsecaseInterface = (*AuthUsecase)(nil)
