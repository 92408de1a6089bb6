package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-lodging/internal/config"
	"github.com/Shivanand-hulikatti/event-lodging/internal/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup((*config.Config).ValidateStore)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := openStore(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}
			store.Close()

			zap.L().Info("migrations applied", zap.String("driver", cfg.StoreDriver))
			return nil
		},
	}
}
