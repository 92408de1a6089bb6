package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int32(20), cfg.Postgres.MaxConns)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=lodging sslmode=disable", cfg.Postgres.DSN())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/lodging")
	t.Setenv("HTTP_READ_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "postgres://u:p@db:5432/lodging", cfg.Postgres.DSN())
}

func TestIsProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())

	assert.False(t, (&Config{Environment: "development"}).IsProduction())
	assert.False(t, (&Config{}).IsProduction())
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:        "8080",
			Environment: "development",
			StoreDriver: DriverSQLite,
			SQLitePath:  "lodging.db",
			JWTSecret:   "0123456789abcdef",
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.StoreDriver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.SQLitePath = ""
	assert.Error(t, cfg.Validate())

	cfg.StoreDriver = DriverPostgres
	assert.NoError(t, cfg.Validate())
}

func TestValidateStoreIgnoresSecret(t *testing.T) {
	cfg := &Config{StoreDriver: DriverPostgres}
	assert.NoError(t, cfg.ValidateStore())
	assert.Error(t, cfg.Validate())
}
