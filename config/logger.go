package config

import (
	"log/slog"
	"os"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger builds the process-wide slog.Logger. LOG_LEVEL picks the level
// (debug, info, warn, error; default info); production (GO_ENV) emits JSON,
// anything else text. Every record carries a service attribute so aggregated
// logs stay attributable.
func NewLogger() *slog.Logger {
	level, ok := logLevels[os.Getenv("LOG_LEVEL")]
	if !ok {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if os.Getenv("GO_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "eventuras-api")
}
