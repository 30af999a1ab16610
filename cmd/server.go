/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/happythoughts/apiserver/config"
	"github.com/happythoughts/apiserver/internal/db"
	"github.com/happythoughts/apiserver/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the API server",
	Long: `Starts the API server. Usage:

	apiserver server

Run "apiserver migrate up" first, or pass --migrate: the unique indexes on
users.username, users.email and users.accessToken are created by migrations,
not by the server.

Set RESET_DB=true to wipe and reseed the dogs and thoughts collections on start.
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if migrateFirst, _ := cmd.Flags().GetBool("migrate"); migrateFirst {
			if err := db.MigrateUp(ctx, cfg); err != nil {
				log.Fatal().Err(err).Msg("failed to apply migrations")
			}
			log.Info().Msg("migrations applied")
		}

		srv, err := server.New(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatal().Err(err).Msg("server error")
			}
			return
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().Bool("migrate", false, "apply pending migrations before starting")
}
