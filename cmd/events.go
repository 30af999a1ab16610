/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/happythoughts/apiserver/config"
	"github.com/happythoughts/apiserver/internal/mq"
	"github.com/happythoughts/apiserver/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// eventsCmd represents the events command.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect resource events published by the server",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Log every event delivered on the events channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Connect(ctx, cfg.Events)
		if err != nil {
			return err
		}
		if queue == nil {
			return errors.New("MQ_BACKEND is not set")
		}
		defer queue.Close()

		log.Info().Str("channel", cfg.Events.Channel).Msg("tailing events")
		err = queue.Subscribe(ctx, cfg.Events.Channel, logEvent)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func logEvent(_ context.Context, msg mq.Message) error {
	var event types.Event
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		log.Warn().Err(err).Str("message_id", msg.ID).Msg("skipping malformed event")
		return nil
	}

	entry := log.Info().
		Str("message_id", msg.ID).
		Str("type", event.Type).
		Str("entity", event.Entity).
		Str("id", event.ID).
		Time("occurred_at", event.OccurredAt)
	if len(event.Data) > 0 {
		entry = entry.RawJSON("data", event.Data)
	}
	entry.Msg("event")
	return nil
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}
