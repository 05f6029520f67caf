package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Log formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New builds a slog logger writing to w and installs it as the default.
// Verbose lowers the level to debug.
func New(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
