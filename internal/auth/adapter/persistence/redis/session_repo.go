package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	"github.com/agniveshadhikari/slinky/internal/auth/usecase"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	userIndexPrefix  = "user_sessions:"
)

// RedisSessionRepository implements SessionRepository on Redis. Records are
// stored with a TTL matching their expiry and a per-user index set so a
// password reset can drop every session of a user.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis-backed session repository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func userIndexKey(userID string) string {
	return userIndexPrefix + userID
}

// CreateSession persists a session with a TTL derived from its expiry.
func (r *RedisSessionRepository) CreateSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.Token), data, ttl)
	pipe.SAdd(ctx, userIndexKey(session.UserID), session.Token)
	pipe.Expire(ctx, userIndexKey(session.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetSessionByToken retrieves a session by its token.
func (r *RedisSessionRepository) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// DeleteSession removes a session. Deleting an absent token is a no-op.
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, token string) error {
	session, err := r.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, userIndexKey(session.UserID), token)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteUserSessions removes every session belonging to a user.
func (r *RedisSessionRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	tokens, err := r.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, sessionKey(token))
	}
	pipe.Del(ctx, userIndexKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
