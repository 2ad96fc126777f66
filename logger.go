package kenlmgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with kenlmgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithPath adds a model path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithOrder adds a model order field to the logger.
func (l *Logger) WithOrder(order int) *Logger {
	return &Logger{
		Logger: l.Logger.With("order", order),
	}
}

// LogConstruct logs a model construction.
func (l *Logger) LogConstruct(path string, order int, err error) {
	if err != nil {
		l.Error("model construction failed",
			"path", path,
			"error", err,
		)
	} else {
		l.Info("model constructed",
			"path", path,
			"order", order,
		)
	}
}

// LogClose logs a model release.
func (l *Logger) LogClose(path string) {
	l.Debug("model released",
		"path", path,
	)
}

// LogPoolCreate logs a pool creation.
func (l *Logger) LogPoolCreate(capacity int, err error) {
	if err != nil {
		l.Error("pool creation failed",
			"capacity", capacity,
			"error", err,
		)
	} else {
		l.Debug("pool created",
			"capacity", capacity,
		)
	}
}
