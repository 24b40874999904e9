// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppAddr string `envconfig:"APP_ADDR" default:":8080"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL    string `envconfig:"DATABASE_URL" required:"true"`
	MigrateOnStart bool   `envconfig:"MIGRATE_ON_START" default:"true"`

	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTTL time.Duration `envconfig:"JWT_ACCESS_TTL" default:"12h"`

	// Notification outbox relay (worker binary)
	OutboxInterval  time.Duration `envconfig:"OUTBOX_INTERVAL" default:"30s"`
	OutboxBatchSize int           `envconfig:"OUTBOX_BATCH_SIZE" default:"20"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	return &cfg, nil
}

// IsDevelopment returns true outside production.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production"
}
