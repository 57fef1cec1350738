// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables, after any .env
// file in the working directory has been merged in.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is json for machine-readable logs or text for colored local output.
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// StorageDriver selects postgres or the in-process memory store.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// DatabaseURL is the Postgres connection string. Required for postgres storage.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`

	// JWTSecret signs and verifies bearer tokens. Required.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the lifetime of tokens minted by cmd/devtoken.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// RedisURL enables the join-code cache when set (redis://host:6379/0).
	RedisURL string `env:"REDIS_URL"`

	// RedisPrefix namespaces cache keys.
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"tripcrew"`

	// CodeCacheTTL bounds how long a join-code entry lives in the cache.
	CodeCacheTTL time.Duration `env:"CODE_CACHE_TTL" envDefault:"24h"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// WriteAttempts bounds optimistic-concurrency retries per operation.
	WriteAttempts int `env:"WRITE_ATTEMPTS" envDefault:"5"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// describing the first invalid value.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	var missing []string
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	switch {
	case cfg.StorageDriver != StoragePostgres && cfg.StorageDriver != StorageMemory:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.StorageDriver)
	case cfg.WriteAttempts < 1:
		return Config{}, fmt.Errorf("WRITE_ATTEMPTS must be at least 1, got %d", cfg.WriteAttempts)
	case cfg.MaxBodyBytes < 1:
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	case cfg.TokenTTL <= 0:
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}

// trimAll trims each entry and drops the empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
