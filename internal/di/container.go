package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agniveshadhikari/slinky/internal/auth"
	"github.com/agniveshadhikari/slinky/internal/auth/config"
	"github.com/agniveshadhikari/slinky/internal/redirect"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container wires the application's modules together and owns their lifecycle.
type Container struct {
	mu sync.RWMutex

	// Module instances
	AuthModule     *auth.AuthModule
	RedirectModule *redirect.RedirectModule

	// Shared connections
	MongoDB     *mongo.Database
	RedisClient *redis.Client

	// Configuration
	Config *config.Config

	// Logger
	Logger logger.Logger
}

// NewContainer creates a new DI container
func NewContainer(log logger.Logger) *Container {
	return &Container{
		Logger: log,
	}
}

// InitializeAuth initializes the authentication module
func (c *Container) InitializeAuth(mongoDB *mongo.Database, redisClient *redis.Client, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MongoDB = mongoDB
	c.RedisClient = redisClient
	c.Config = cfg

	authModule, err := auth.NewAuthModule(mongoDB, redisClient, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	c.AuthModule = authModule
	return nil
}

// InitializeRedirects initializes the redirect module. The auth module must be
// initialized first because the redirect routes sit behind its middleware.
func (c *Container) InitializeRedirects() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before redirect module")
	}
	if c.MongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before redirect module")
	}

	redirectModule, err := redirect.NewRedirectModule(c.MongoDB, c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create redirect module: %w", err)
	}

	c.RedirectModule = redirectModule
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetRedirectModule returns the redirect module instance
func (c *Container) GetRedirectModule() *redirect.RedirectModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RedirectModule
}

// HealthCheck pings every backing store the container holds a handle to.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}

	return nil
}

// Cleanup shuts the modules down in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.RedirectModule != nil {
		if err := c.RedirectModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop redirect module: %w", err))
		}
		c.RedirectModule = nil
	}

	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop auth module: %w", err))
		}
		c.AuthModule = nil
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
		c.RedisClient = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warnf("cleanup errors occurred: %v", err)
	}

	return nil
}
