package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON = "json"

	// FormatText writes colored text lines.
	FormatText = "text"
)

const textTimeFormat = "15:04:05.000"

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string
	Format string

	// NoColor disables ANSI colors in the text format.
	NoColor bool
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config; defaults to INFO if invalid or empty.
// Unknown formats fall back to JSON.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	return slog.New(NewHandler(config, w))
}

// NewHandler creates the slog.Handler behind NewLogger.
func NewHandler(config LoggerConfig, w io.Writer) slog.Handler { //nolint:ireturn // handler type depends on format
	level := ParseLevel(config.Level)

	if strings.EqualFold(strings.TrimSpace(config.Format), FormatText) {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: textTimeFormat,
			NoColor:    config.NoColor,
		})
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})
}

// ParseLevel maps a level name to a slog.Level, case-insensitively.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
