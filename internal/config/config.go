// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the full service configuration.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Environment     string        `env:"APP_ENV" envDefault:"development"`
	StoreDriver     string        `env:"STORE_DRIVER" envDefault:"postgres"`
	SQLitePath      string        `env:"SQLITE_PATH" envDefault:"lodging.db"`
	JWTSecret       string        `env:"JWT_SECRET"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Postgres        Postgres
}

// Postgres holds PostgreSQL connection settings.
type Postgres struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            string        `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"postgres"`
	Password        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName          string        `env:"DB_NAME" envDefault:"lodging"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	URL             string        `env:"DATABASE_URL"`
	MaxConns        int32         `env:"DB_MAX_CONNS" envDefault:"20"`
	MinConns        int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	ConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"5"`
}

// DSN builds a libpq-compatible connection string. DATABASE_URL wins when set.
func (p Postgres) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// Load parses the environment into a Config. It does not validate; call
// Validate before serving.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings needed to serve requests.
func (c *Config) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.Environment, validation.Required, validation.In("development", "production")),
		validation.Field(&c.StoreDriver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
		validation.Field(&c.SQLitePath, validation.By(c.requireSQLitePath)),
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(16, 0)),
	)
}

// ValidateStore checks only the store settings; used by commands that never
// verify tokens.
func (c *Config) ValidateStore() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.StoreDriver, validation.Required, validation.In(DriverPostgres, DriverSQLite)),
		validation.Field(&c.SQLitePath, validation.By(c.requireSQLitePath)),
	)
}

func (c *Config) requireSQLitePath(value interface{}) error {
	path, _ := value.(string)
	if c.StoreDriver == DriverSQLite && path == "" {
		return errors.New("cannot be blank when STORE_DRIVER is sqlite")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
