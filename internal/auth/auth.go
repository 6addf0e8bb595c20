package auth

import (
	"fmt"

	authhttp "github.com/agniveshadhikari/slinky/internal/auth/adapter/http"
	"github.com/agniveshadhikari/slinky/internal/auth/adapter/persistence/mongodb"
	redispersist "github.com/agniveshadhikari/slinky/internal/auth/adapter/persistence/redis"
	"github.com/agniveshadhikari/slinky/internal/auth/config"
	"github.com/agniveshadhikari/slinky/internal/auth/domain/repository"
	"github.com/agniveshadhikari/slinky/internal/auth/usecase"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthModule bundles the authentication bounded context: user and session
// persistence, the session manager usecase and the HTTP surface.
type AuthModule struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule creates a new authentication module instance. Sessions live in
// MongoDB by default; with SESSION_STORE=redis they move to the provided Redis
// client while users stay in MongoDB.
func NewAuthModule(db *mongo.Database, redisClient *redis.Client, cfg *config.Config, log logger.Logger) (*AuthModule, error) {
	authRepo, err := mongodb.NewMongoAuthRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth repository: %w", err)
	}

	var sessions repository.SessionRepository = authRepo
	if cfg.SessionStore == config.SessionStoreRedis {
		if redisClient == nil {
			return nil, fmt.Errorf("session store %q requires a redis client", cfg.SessionStore)
		}
		sessions = redispersist.NewRedisSessionRepository(redisClient)
	}

	authUsecase := usecase.NewAuthUsecase(authRepo, sessions, cfg, log)
	handler := authhttp.NewAuthHTTPHandler(authUsecase, cfg)
	middleware := authhttp.NewAuthMiddleware(authUsecase, cfg.SessionCookieName())

	return &AuthModule{
		users:      authRepo,
		sessions:   sessions,
		usecase:    authUsecase,
		handler:    handler,
		middleware: middleware,
		config:     cfg,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutes(router, am.middleware)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware for other modules' routes
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	return nil
}
