package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Session store backends
const (
	SessionStoreMongo = "mongodb"
	SessionStoreRedis = "redis"
)

// Config holds all configuration for the service. The database and base URL
// options are required; the process must not start without them.
type Config struct {
	// Deployment base domain, e.g. "links.example.com". Used for the session
	// cookie name and the fallback redirect target.
	BaseURL string `env:"BASE_URL,required"`

	// MongoDB configuration
	DatabaseUsername string `env:"DATABASE_USERNAME,required"`
	DatabasePassword string `env:"DATABASE_PASSWORD,required"`
	DatabaseName     string `env:"DATABASE_DB,required"`
	DatabaseHost     string `env:"DATABASE_HOST,required"`
	// Collection holding redirect records.
	RedirectsCollection string `env:"DATABASE_TABLE,required"`

	// Session configuration
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	PersistentSessionTTL time.Duration `env:"PERSISTENT_SESSION_TTL" envDefault:"720h"` // 30 days
	SessionStore         string        `env:"SESSION_STORE" envDefault:"mongodb"`
	RedisAddr            string        `env:"REDIS_ADDR"`

	// Cookie configuration
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"` // Set to true in production
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"` // "Lax", "Strict", "None"
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error() +
			". Please ensure all required environment variables are set.")
	}

	// Normalize and validate CookieSameSite
	cfg.CookieSameSite = strings.Title(strings.ToLower(cfg.CookieSameSite))
	if !(cfg.CookieSameSite == "Lax" || cfg.CookieSameSite == "Strict" || cfg.CookieSameSite == "None") {
		return nil, errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}

	switch cfg.SessionStore {
	case SessionStoreMongo:
	case SessionStoreRedis:
		if cfg.RedisAddr == "" {
			return nil, errors.New("redis_addr is required when session_store is 'redis'")
		}
	default:
		return nil, fmt.Errorf("session_store must be %q or %q", SessionStoreMongo, SessionStoreRedis)
	}

	if cfg.SessionTTL <= 0 || cfg.PersistentSessionTTL <= 0 {
		return nil, errors.New("session TTLs must be positive")
	}
	if cfg.PersistentSessionTTL < cfg.SessionTTL {
		return nil, errors.New("persistent_session_ttl must not be shorter than session_ttl")
	}

	return cfg, nil
}

// SessionCookieName derives the cookie name from the deployment's base domain
// so deployments sharing a parent domain never collide: dots become
// underscores, suffixed with "__session".
func (c *Config) SessionCookieName() string {
	return strings.ReplaceAll(c.BaseURL, ".", "_") + "__session"
}

// MongoURI assembles the connection string from the individual database options.
func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s", c.DatabaseUsername, c.DatabasePassword, c.DatabaseHost)
}

// ExternalBaseURL is the public address of this deployment, used as the safe
// fallback target when redirect resolution fails.
func (c *Config) ExternalBaseURL() string {
	return "https://" + c.BaseURL
}
