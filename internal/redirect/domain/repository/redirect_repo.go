package repository

import (
	"context"

	"github.com/agniveshadhikari/slinky/internal/redirect/domain/model"
)

// RedirectRepository defines the interface for redirect persistence. Path
// uniqueness is the store's invariant; create must surface a conflict rather
// than overwrite.
type RedirectRepository interface {
	Create(ctx context.Context, redirect *model.Redirect) error
	GetByPath(ctx context.Context, path string) (*model.Redirect, error)
	// Delete removes the record for a path. Deleting an absent path is not an
	// error.
	Delete(ctx context.Context, path string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Redirect, error)
}
