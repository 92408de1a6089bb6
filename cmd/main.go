// cmd/main.go is the application entry point.
// It wires together all layers behind the serve, migrate and seed commands.
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/event-lodging/internal/config"
	"github.com/Shivanand-hulikatti/event-lodging/internal/database"
	"github.com/Shivanand-hulikatti/event-lodging/internal/logger"
	"github.com/Shivanand-hulikatti/event-lodging/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "lodging",
		Short:        "Hotel room booking service for event attendees",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return cmd
}

// setup loads the configuration and installs the logger.
func setup(validate func(*config.Config) error) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Init(cfg.IsProduction()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore connects to the configured driver and applies pending migrations
// when migrate is set.
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (repository.SeedStore, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := database.MigrateSQLite(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return repository.NewSQLiteStore(db), nil

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if migrate {
			if err := database.MigratePostgres(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return repository.NewPostgresStore(pool), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
