package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/agniveshadhikari/slinky/internal/redirect/domain/model"
	"github.com/agniveshadhikari/slinky/internal/redirect/usecase"
	apperrors "github.com/agniveshadhikari/slinky/internal/shared/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func infraError(message string, cause error) error {
	return apperrors.NewInfrastructureError(message).
		WithCause(cause).
		WithComponent("redirect_repository")
}

// MongoRedirectRepository implements RedirectRepository using MongoDB. The
// unique index on path is the concurrency discipline for path uniqueness; no
// application-level lock is taken.
type MongoRedirectRepository struct {
	collection *mongo.Collection
}

// NewMongoRedirectRepository creates a new MongoDB redirect repository on the
// named collection and ensures its indexes.
func NewMongoRedirectRepository(db *mongo.Database, collectionName string) (*MongoRedirectRepository, error) {
	repo := &MongoRedirectRepository{
		collection: db.Collection(collectionName),
	}

	ctx := context.Background()

	pathIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "path", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := repo.collection.Indexes().CreateOne(ctx, pathIndex); err != nil {
		return nil, infraError("failed to create path index", err)
	}

	ownerIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	}

	if _, err := repo.collection.Indexes().CreateOne(ctx, ownerIndex); err != nil {
		return nil, infraError("failed to create owner index", err)
	}

	return repo, nil
}

// Create inserts a redirect record
func (r *MongoRedirectRepository) Create(ctx context.Context, redirect *model.Redirect) error {
	if redirect.CreatedAt.IsZero() {
		redirect.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, redirect); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrDuplicatePath
		}
		return infraError("failed to insert redirect", err)
	}

	return nil
}

// GetByPath retrieves a redirect record by its path
func (r *MongoRedirectRepository) GetByPath(ctx context.Context, path string) (*model.Redirect, error) {
	var redirect model.Redirect
	err := r.collection.FindOne(ctx, bson.M{"path": path}).Decode(&redirect)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrRedirectNotFound
		}
		return nil, infraError("failed to query redirect by path", err)
	}

	return &redirect, nil
}

// Delete removes a redirect by path. Absent paths are a no-op.
func (r *MongoRedirectRepository) Delete(ctx context.Context, path string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"path": path}); err != nil {
		return infraError("failed to delete redirect", err)
	}
	return nil
}

// ListByOwner returns the redirects owned by a user, newest first
func (r *MongoRedirectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*model.Redirect, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, infraError("failed to list redirects", err)
	}
	defer cursor.Close(ctx)

	var redirects []*model.Redirect
	if err := cursor.All(ctx, &redirects); err != nil {
		return nil, infraError("failed to decode redirects", err)
	}

	return redirects, nil
}
