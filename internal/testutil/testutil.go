// Package testutil opens migrated record stores for tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/event-lodging/internal/database"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

// NewSQLiteStore returns a migrated SQLite store in a temp dir. It is closed
// when the test ends.
func NewSQLiteStore(t testing.TB) *repository.SQLiteStore {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "lodging.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateSQLite(ctx, db))

	store := repository.NewSQLiteStore(db)
	t.Cleanup(store.Close)
	return store
}

// NewPostgresStore starts a throwaway PostgreSQL container and returns a
// migrated store on it. The test is skipped under -short or when Docker is
// not reachable.
func NewPostgresStore(t testing.TB) *repository.PostgresStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=lodging",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s/lodging?sslmode=disable", resource.GetHostPort("5432/tcp"))
	ctx := context.Background()

	var db *pgxpool.Pool
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		p, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		db = p
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, database.MigratePostgres(ctx, db))

	store := repository.NewPostgresStore(db)
	t.Cleanup(store.Close)
	return store
}
