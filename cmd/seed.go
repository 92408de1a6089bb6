package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/event-lodging/internal/config"
	"github.com/Shivanand-hulikatti/event-lodging/internal/handler"
	"github.com/Shivanand-hulikatti/event-lodging/internal/logger"
	"github.com/Shivanand-hulikatti/event-lodging/internal/seed"
)

func seedCmd() *cobra.Command {
	var email string

	c := &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo hotel, ticket types and a paid attendee",
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
			defer store.Close()

			ds, err := seed.Demo(cmd.Context(), store, email)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			zap.L().Info("demo data inserted",
				zap.Int("user_id", ds.UserID),
				zap.Int("hotel_id", ds.HotelID),
				zap.Ints("room_ids", ds.RoomIDs),
			)

			fmt.Printf("user %d, hotel %d, rooms %v\n", ds.UserID, ds.HotelID, ds.RoomIDs)
			if cfg.JWTSecret == "" {
				return nil
			}
			token, err := handler.NewAuthenticator(cfg.JWTSecret).Sign(ds.UserID, jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			})
			if err != nil {
				return fmt.Errorf("sign demo token: %w", err)
			}
			fmt.Printf("token %s\n", token)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "demo@lodging.test", "email of the demo attendee")
	return c
}
