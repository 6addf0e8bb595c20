package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agniveshadhikari/slinky/internal/auth/config"
	"github.com/agniveshadhikari/slinky/internal/di"
	"github.com/agniveshadhikari/slinky/internal/shared/logger"
	"github.com/agniveshadhikari/slinky/web"

	"github.com/caarlos0/env/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Port string `env:"SERVER_PORT" envDefault:"3000"`
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load server configuration
	serverCfg := &ServerConfig{}
	if err := env.Parse(serverCfg); err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	// Initialize logger
	appLogger := logger.NewLogger()

	// Load application configuration. Missing required variables are fatal;
	// there is no sensible way to run without them.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger.Info("Application configuration loaded successfully")

	// Initialize Dependency Injection Container
	container := di.NewContainer(appLogger)
	defer func() {
		if err := container.Close(); err != nil {
			appLogger.Errorf("Failed to close container: %v", err)
		}
	}()

	// Initialize MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI()))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	// Verify MongoDB connection
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	appLogger.Info("MongoDB connection established successfully")

	mongoDB := mongoClient.Database(cfg.DatabaseName)

	// Sessions optionally live in Redis instead of MongoDB.
	var redisClient *redis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to ping Redis: %v", err)
		}
		appLogger.Info("Redis connection established successfully")
	}

	// Initialize modules through the container
	if err := container.InitializeAuth(mongoDB, redisClient, cfg); err != nil {
		log.Fatalf("Failed to initialize auth module: %v", err)
	}
	appLogger.Info("Auth module initialized successfully")

	if err := container.InitializeRedirects(); err != nil {
		log.Fatalf("Failed to initialize redirect module: %v", err)
	}
	appLogger.Info("Redirect module initialized successfully")

	// Setup HTTP server (Fiber) with the embedded view engine
	app := fiber.New(fiber.Config{
		AppName:      "Slinky v1.0",
		Views:        web.NewEngine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			appLogger.Errorf("HTTP Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
		},
	})

	authModule := container.GetAuthModule()
	redirectModule := container.GetRedirectModule()

	// Every request gets a request ID and a resolved user (or stays anonymous).
	app.Use(recover.New())
	app.Use(authModule.GetMiddleware().RequestID())
	app.Use(authModule.GetMiddleware().WithUser())

	// Health check endpoint with container health status
	app.Get("/health", func(c *fiber.Ctx) error {
		healthCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := container.HealthCheck(healthCtx); err != nil {
			appLogger.Errorf("Health check failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "UNHEALTHY",
				"error":  err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"status":    "HEALTHY",
			"timestamp": time.Now().UTC(),
		})
	})

	// Register module routes. The catch-all matches everything, so it must be
	// registered last.
	authModule.RegisterRoutes(app)
	redirectModule.RegisterRoutes(app, authModule.GetMiddleware())
	redirectModule.RegisterCatchAll(app)

	serverAddr := fmt.Sprintf("%s:%s", serverCfg.Host, serverCfg.Port)
	appLogger.Infof("All modules initialized. Starting HTTP server on %s", serverAddr)

	// Start server in a goroutine for graceful shutdown
	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(serverAddr)
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}

		appLogger.Info("HTTP server stopped")
	}
}
