package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-lodging/internal/config"
	"github.com/Shivanand-hulikatti/event-lodging/internal/handler"
	"github.com/Shivanand-hulikatti/event-lodging/internal/logger"
	"github.com/Shivanand-hulikatti/event-lodging/internal/service"
)

func serveCmd() *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup((*config.Config).Validate)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cmd.Context(), cfg, migrate)
		},
	}

	c.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return c
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	// ── 1. Open the record store ─────────────────────────────────────────
	store, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()
	zap.L().Info("record store ready", zap.String("driver", cfg.StoreDriver))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	bookingHandler := handler.NewBookingHandler(service.NewBookingService(store))
	hotelHandler := handler.NewHotelHandler(service.NewHotelService(store))
	auth := handler.NewAuthenticator(cfg.JWTSecret)

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      handler.NewRouter(bookingHandler, hotelHandler, auth),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	zap.L().Info("server stopped")
	return nil
}
