// Package logging configures the global zerolog logger and provides the
// HTTP request logging middleware.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/happythoughts/apiserver/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger from cfg.
func Setup(cfg config.LogConfig) {
	Configure(os.Stderr, cfg)
}

// Configure points the global logger at out.
func Configure(out io.Writer, cfg config.LogConfig) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldInteger = true

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05 MST"}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
