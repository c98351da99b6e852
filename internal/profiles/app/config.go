package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	httpapi "github.com/aussiebroadwan/profiles/internal/profiles/http"
	"github.com/aussiebroadwan/profiles/pkg/httpx"
	"github.com/joho/godotenv"
)

// DefaultSecretKey is used when SECRET_KEY is unset. Fine for local use only.
const DefaultSecretKey = "your-secret-key-here-change-in-production"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	SecretKey           string             // Signs CSRF tokens and flash cookies (default: DefaultSecretKey)
	DatabaseDriver      string             // sqlite or postgres (default: sqlite)
	DatabaseFile        string             // SQLite database file (default: users.db)
	DatabaseURL         string             // Postgres connection string, required for the postgres driver
	Env                 string             // Environment (dev, staging, prod) (default: dev)
	LogLevel            string             // Log level (debug, info, warn, error) (default: info)
	LogFormat           string             // Log format (json, text) (default: json)
	Port                int                // HTTP server port (default: 5000)
	ShutdownGracePeriod time.Duration      // Graceful shutdown timeout (default: 10s)
	RateLimits          httpapi.RateLimits // Per-surface limits, see RATELIMIT_* env
}

// LoadConfig reads a .env file if one exists, then the environment.
func LoadConfig() Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	defaults := httpapi.DefaultRateLimits()

	return Config{
		SecretKey:           getEnvOrDefault("SECRET_KEY", DefaultSecretKey),
		DatabaseDriver:      getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "users.db"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 5000),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		RateLimits: httpapi.RateLimits{
			Form: httpx.ParseRateLimitFromEnv("FORM", defaults.Form),
			Page: httpx.ParseRateLimitFromEnv("PAGE", defaults.Page),
			API:  httpx.ParseRateLimitFromEnv("API", defaults.API),
		},
	}
}

// Validate reports settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY must not be empty"))
	}

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("DATABASE_FILE must not be empty"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q (want sqlite or postgres)", c.DatabaseDriver))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	return errors.Join(errs...)
}

// UsingDefaultSecret reports whether SECRET_KEY was left at its placeholder.
func (c Config) UsingDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// SecureCookies is on outside dev so cookies are only sent over HTTPS.
func (c Config) SecureCookies() bool {
	return c.Env != "dev"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept "30s" style durations, or a bare number of seconds.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
