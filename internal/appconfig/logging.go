package appconfig

import (
	"context"
	"log/slog"
	"os"
)

// Log logs the resolved settings in a granular way.
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger.
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "config: project_root", "value", s.ProjectRoot)
	logger.InfoContext(ctx, "config: db_path", "value", s.DBPath)
	logger.InfoContext(ctx, "config: workers", "value", s.Workers)
	logger.InfoContext(ctx, "config: log_level", "value", s.LogLevel)
	logger.InfoContext(ctx, "config: ignore_dirs", "count", len(s.IgnoreDirs))
}

// NewLogger builds a slog.Logger from the resolved log level and format.
func NewLogger(s *Settings) *slog.Logger {
	var level slog.Level
	switch s.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// SettingsLogValue returns a slog.Value for Settings, for structured logging.
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("project_root", s.ProjectRoot),
		slog.String("db_path", s.DBPath),
		slog.Int("workers", s.Workers),
		slog.String("log_level", s.LogLevel),
	)
}
