// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the full process configuration.
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	StoreDriver string   `env:"STORE_DRIVER" envDefault:"postgres"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	Database Database
	JWT      JWT
	Admins   Admins
	Tracing  Tracing
}

// Tracing configures the OTLP span exporter. An empty endpoint disables it.
type Tracing struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"attendee-registry"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"registry"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (c Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// JWT configures admin token issuance.
type JWT struct {
	Secret     string        `env:"JWT_SECRET" envDefault:"dev-secret-key-change-in-production"`
	Expiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	Issuer     string        `env:"JWT_ISSUER" envDefault:"attendee-registry"`
}

// Admins are the two operators created at startup when absent.
type Admins struct {
	DefaultUsername string `env:"ADMIN_DEFAULT_USERNAME" envDefault:"admin"`
	DefaultPassword string `env:"ADMIN_DEFAULT_PASSWORD"`
	SecondUsername  string `env:"ADMIN_SECOND_USERNAME"`
	SecondPassword  string `env:"ADMIN_SECOND_PASSWORD"`
}

// Credential is a bootstrap username/password pair.
type Credential struct {
	Username string
	Password string
}

// Credentials returns the configured admins that have both a username and a
// password.
func (a Admins) Credentials() []Credential {
	var out []Credential
	for _, c := range []Credential{
		{a.DefaultUsername, a.DefaultPassword},
		{a.SecondUsername, a.SecondPassword},
	} {
		if strings.TrimSpace(c.Username) != "" && c.Password != "" {
			out = append(out, c)
		}
	}
	return out
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.StoreDriver {
	case DriverPostgres, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.JWT.Expiration <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRATION must be positive")
	}
	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
