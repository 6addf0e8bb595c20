package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/agniveshadhikari/slinky/internal/auth/domain/model"
	"github.com/agniveshadhikari/slinky/internal/auth/usecase"
	apperrors "github.com/agniveshadhikari/slinky/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func infraError(message string, cause error) error {
	return apperrors.NewInfrastructureError(message).
		WithCause(cause).
		WithComponent("auth_repository")
}

// MongoAuthRepository implements UserRepository and SessionRepository using
// MongoDB.
type MongoAuthRepository struct {
	db                 *mongo.Database
	usersCollection    *mongo.Collection
	sessionsCollection *mongo.Collection
}

// NewMongoAuthRepository creates a new MongoDB auth repository and ensures its
// indexes.
func NewMongoAuthRepository(db *mongo.Database) (*MongoAuthRepository, error) {
	repo := &MongoAuthRepository{
		db:                 db,
		usersCollection:    db.Collection("users"),
		sessionsCollection: db.Collection("sessions"),
	}

	ctx := context.Background()

	// Username index for users (unique)
	usernameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := repo.usersCollection.Indexes().CreateOne(ctx, usernameIndex); err != nil {
		return nil, infraError("failed to create username index", err)
	}

	// ID index for users (UUID lookups)
	idIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetSparse(true),
	}

	if _, err := repo.usersCollection.Indexes().CreateOne(ctx, idIndex); err != nil {
		return nil, infraError("failed to create user id index", err)
	}

	// Token index for sessions (unique bearer tokens)
	tokenIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := repo.sessionsCollection.Indexes().CreateOne(ctx, tokenIndex); err != nil {
		return nil, infraError("failed to create session token index", err)
	}

	// TTL index reaps expired sessions in the background. Validity is still
	// decided at read time, so a record outliving its expiry is harmless.
	expiresAtIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}

	if _, err := repo.sessionsCollection.Indexes().CreateOne(ctx, expiresAtIndex); err != nil {
		return nil, infraError("failed to create session expiry index", err)
	}

	return repo, nil
}

// CreateUser creates a new user in the database
func (r *MongoAuthRepository) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	doc := bson.M{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	if _, err := r.usersCollection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrUsernameTaken
		}
		return infraError("failed to insert user", err)
	}

	return nil
}

// GetUserByUsername retrieves a user by username
func (r *MongoAuthRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.usersCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, infraError("failed to query user by username", err)
	}

	if user.ID == "" && !user.ObjectID.IsZero() {
		user.ID = user.ObjectID.Hex()
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *MongoAuthRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.usersCollection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, infraError("failed to query user by id", err)
	}

	if user.ID == "" && !user.ObjectID.IsZero() {
		user.ID = user.ObjectID.Hex()
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash for a user
func (r *MongoAuthRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	result, err := r.usersCollection.UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}},
	)
	if err != nil {
		return infraError("failed to update password", err)
	}
	if result.MatchedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// CreateSession creates a new session
func (r *MongoAuthRepository) CreateSession(ctx context.Context, session *model.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	if _, err := r.sessionsCollection.InsertOne(ctx, session); err != nil {
		return infraError("failed to insert session", err)
	}
	return nil
}

// GetSessionByToken retrieves a session by its token
func (r *MongoAuthRepository) GetSessionByToken(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	err := r.sessionsCollection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, infraError("failed to query session by token", err)
	}

	return &session, nil
}

// DeleteSession deletes a session by token. Absent tokens are a no-op.
func (r *MongoAuthRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := r.sessionsCollection.DeleteOne(ctx, bson.M{"token": token}); err != nil {
		return infraError("failed to delete session", err)
	}
	return nil
}

// DeleteUserSessions deletes every session belonging to a user
func (r *MongoAuthRepository) DeleteUserSessions(ctx context.Context, userID string) error {
	if _, err := r.sessionsCollection.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return infraError("failed to delete user sessions", err)
	}
	return nil
}
