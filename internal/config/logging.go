package config

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Debug level in non-prod
// environments, info otherwise.
func NewLogger(environment string) *slog.Logger {
	level := slog.LevelInfo
	if environment != "prod" {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
