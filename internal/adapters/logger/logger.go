// Package logger implements a logging adapter using log/slog.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"go.trai.ch/regen/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
}

// New creates a logger writing text records to stderr. The level is
// taken from REGEN_LOG_LEVEL (debug|info|warn|error), defaulting to info.
func New() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	return &Logger{logger: slog.New(handler)}
}

// NewWithHandler creates a logger with an explicit handler. Used by tests.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{logger: slog.New(h)}
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.logger.Error("operation failed", "error", err)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("REGEN_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
