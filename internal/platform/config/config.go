// Package config loads application configuration from environment variables
// using go-envconfig.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full application configuration.
type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// BaseURL is the externally reachable base URL, used in reset emails.
	BaseURL string `env:"APP_BASE_URL, default=http://localhost:8080"`

	JWT   JWTConfig
	DB    DBConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	Expiry time.Duration `env:"JWT_EXPIRY, default=24h"`
}

type DBConfig struct {
	Host          string `env:"DB_HOST, default=localhost"`
	Port          string `env:"DB_PORT, default=5432"`
	User          string `env:"DB_USER, default=postgres"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME, default=market"`
	SSLMode       string `env:"DB_SSLMODE, default=disable"`
	RunMigrations bool   `env:"RUN_MIGRATIONS, default=false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=noreply@localhost"`
	FromName string `env:"SMTP_FROM_NAME, default=Market"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
