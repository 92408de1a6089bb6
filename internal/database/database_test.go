package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	require.Error(t, err)
}

func TestMigrateSQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "lodging.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, MigrateSQLite(ctx, db))
	require.NoError(t, MigrateSQLite(ctx, db))

	var applied int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)

	for _, table := range []string{"users", "enrollments", "addresses", "ticket_types", "tickets", "hotels", "rooms", "bookings"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INTEGER);\n", ExtractUpMigration(content))
	assert.Equal(t, "SELECT 1;", ExtractUpMigration("SELECT 1;"))
	assert.Equal(t, "\nSELECT 1;", ExtractUpMigration("-- +migrate Up\nSELECT 1;"))
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	for _, root := range []string{"migrations/postgres", "migrations/sqlite"} {
		ms, err := loadMigrations(root)
		require.NoError(t, err)
		require.NotEmpty(t, ms, root)
		assert.Equal(t, "0001_init.sql", ms[0].name)
		assert.NotContains(t, ms[0].up, "DROP TABLE")
	}
}
