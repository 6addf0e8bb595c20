package redirect

import (
	"fmt"

	authhttp "github.com/agniveshadhikari/slinky/internal/auth/adapter/http"
	"github.com/agniveshadhikari/slinky/internal/auth/config"
	redirecthttp "github.com/agniveshadhikari/slinky/internal/redirect/adapter/http"
	"github.com/agniveshadhikari/slinky/internal/redirect/adapter/persistence/mongodb"
	"github.com/agniveshadhikari/slinky/internal/redirect/domain/repository"
	"github.com/agniveshadhikari/slinky/internal/redirect/usecase"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// RedirectModule bundles the redirect bounded context: persistence, the
// resolver usecase and the HTTP surface.
type RedirectModule struct {
	repo    repository.RedirectRepository
	usecase usecase.RedirectUsecaseInterface
	handler *redirecthttp.RedirectHTTPHandler
}

// NewRedirectModule creates a new redirect module instance backed by the
// configured MongoDB collection.
func NewRedirectModule(db *mongo.Database, cfg *config.Config, log logger.Logger) (*RedirectModule, error) {
	repo, err := mongodb.NewMongoRedirectRepository(db, cfg.RedirectsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to create redirect repository: %w", err)
	}

	redirectUsecase := usecase.NewRedirectUsecase(repo, log)
	handler := redirecthttp.NewRedirectHTTPHandler(redirectUsecase, cfg, log)

	return &RedirectModule{
		repo:    repo,
		usecase: redirectUsecase,
		handler: handler,
	}, nil
}

// RegisterRoutes registers the authenticated management surface
func (rm *RedirectModule) RegisterRoutes(router fiber.Router, middleware *authhttp.AuthMiddleware) {
	rm.handler.SetupManagementRoutes(router, middleware)
}

// RegisterCatchAll registers the public redirect route; call it after every
// other route so it stays lowest priority.
func (rm *RedirectModule) RegisterCatchAll(router fiber.Router) {
	rm.handler.SetupCatchAllRoute(router)
}

// GetUsecase returns the redirect usecase for external access
func (rm *RedirectModule) GetUsecase() usecase.RedirectUsecaseInterface {
	return rm.usecase
}

// Stop performs cleanup when the module is shut down
func (rm *RedirectModule) Stop() error {
	return nil
}
