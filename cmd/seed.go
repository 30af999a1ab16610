/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/happythoughts/apiserver/config"
	"github.com/happythoughts/apiserver/internal/db"
	"github.com/happythoughts/apiserver/internal/seed"
	"github.com/happythoughts/apiserver/internal/services"
	"github.com/happythoughts/apiserver/internal/storage"
	"github.com/happythoughts/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// seedCmd represents the seed command.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Manage the dogs and thoughts seed datasets",
}

var seedResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the dogs and thoughts collections and reload the seed data",
	Long: `Wipe the dogs and thoughts collections and reload the seed data.
The datasets are read from object storage when STORAGE_BACKEND is set,
otherwise the copies built into the binary are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.LoadConfig()

		client, err := db.Open(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() {
			_ = client.Disconnect(ctx)
		}()

		st, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			return err
		}

		var source seed.Source = seed.EmbeddedSource{}
		if st != nil {
			defer st.Close()
			source = seed.NewObjectSource(st, cfg.Storage.SeedPrefix)
		}

		database := db.Database(client, cfg)
		seeder := seed.NewSeeder(source, store.NewDogRepository(database), store.NewThoughtRepository(database), services.NewValidator())
		return seeder.Reset(ctx)
	},
}

var seedUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Copy the built-in seed datasets to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.LoadConfig()

		st, err := storage.Connect(ctx, cfg.Storage)
		if err != nil {
			return err
		}
		if st == nil {
			return errors.New("STORAGE_BACKEND is not set")
		}
		defer st.Close()

		return seed.Upload(ctx, st, cfg.Storage.SeedPrefix)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.AddCommand(seedResetCmd)
	seedCmd.AddCommand(seedUploadCmd)
}
