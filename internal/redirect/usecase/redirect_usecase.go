package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/agniveshadhikari/slinky/internal/redirect/domain/model"
	"github.com/agniveshadhikari/slinky/internal/redirect/domain/repository"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"
)

var (
	ErrDuplicatePath    = errors.New("redirect path already exists")
	ErrRedirectNotFound = errors.New("redirect not found")
	ErrPathRequired     = errors.New("path is required")
	ErrTargetRequired   = errors.New("target URL is required")
	ErrInvalidTarget    = errors.New("target URL is not valid")
)

// RedirectUsecaseInterface defines the contract for redirect management and
// resolution.
type RedirectUsecaseInterface interface {
	ResolveActive(ctx context.Context, path string) (string, error)
	Create(ctx context.Context, path, targetURL, ownerID string) (*model.Redirect, error)
	Delete(ctx context.Context, path string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Redirect, error)
}

// RedirectUsecase implements redirect management. Resolution re-queries the
// store on every call; no cache, so a delete or deactivation takes effect
// immediately.
type RedirectUsecase struct {
	repo repository.RedirectRepository
	log  logger.Logger
}

// NewRedirectUsecase creates a new instance of RedirectUsecase.
func NewRedirectUsecase(repo repository.RedirectRepository, log logger.Logger) *RedirectUsecase {
	return &RedirectUsecase{
		repo: repo,
		log:  log.WithComponent("redirect_usecase"),
	}
}

// ResolveActive looks up the target URL for a path. Unknown paths and inactive
// records both resolve to ("", nil); only storage failures surface as errors
// so the handler can fall back safely.
func (uc *RedirectUsecase) ResolveActive(ctx context.Context, path string) (string, error) {
	redirect, err := uc.repo.GetByPath(ctx, path)
	if err != nil {
		if errors.Is(err, ErrRedirectNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	if !redirect.Active {
		return "", nil
	}

	return redirect.TargetURL, nil
}

// Create inserts an active redirect. A path collision surfaces as
// ErrDuplicatePath; the store keeps exactly the first record.
func (uc *RedirectUsecase) Create(ctx context.Context, path, targetURL, ownerID string) (*model.Redirect, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return nil, ErrPathRequired
	}
	targetURL = strings.TrimSpace(targetURL)
	if targetURL == "" {
		return nil, ErrTargetRequired
	}
	if parsed, err := url.Parse(targetURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidTarget
	}

	redirect := &model.Redirect{
		Path:      path,
		TargetURL: targetURL,
		OwnerID:   ownerID,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, redirect); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Infof("created redirect %s -> %s", redirect.Path, redirect.TargetURL)
	return redirect, nil
}

// Delete removes a redirect by path. Deleting an absent path succeeds; the
// caller observes the same post-state either way.
func (uc *RedirectUsecase) Delete(ctx context.Context, path string) error {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return ErrPathRequired
	}
	if err := uc.repo.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete redirect %q: %w", path, err)
	}
	return nil
}

// ListByOwner returns the redirects owned by a user for the management view.
func (uc *RedirectUsecase) ListByOwner(ctx context.Context, ownerID string) ([]*model.Redirect, error) {
	return uc.repo.ListByOwner(ctx, ownerID)
}

// Ensure RedirectUsecase implements RedirectUsecaseInterface
var _ RedirectUsecaseInterface = (*RedirectUsecase)(nil)
