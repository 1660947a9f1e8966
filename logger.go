package mertio

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mertio-specific context.
// It provides structured logging with consistent field names.
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
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithGroupIndex tags the logger with the group (sentence) index.
func (l *Logger) WithGroupIndex(group string) *Logger {
	return &Logger{
		Logger: l.Logger.With("group", group),
	}
}

// WithPath tags the logger with a file or blob name.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// LogLoad logs the outcome of a load.
func (l *Logger) LogLoad(ctx context.Context, records, arity int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"records", records,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "load completed",
			"records", records,
			"arity", arity,
		)
	}
}

// LogSave logs the outcome of a save.
func (l *Logger) LogSave(ctx context.Context, records int, binary bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"records", records,
			"binary", binary,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "save completed",
			"records", records,
			"binary", binary,
		)
	}
}

// LogFormatError reports a malformed header or footer line.
func (l *Logger) LogFormatError(ctx context.Context, err *FormatError) {
	l.ErrorContext(ctx, "wrong "+err.Section.String(),
		"line", err.Line,
		"error", err.Err,
	)
}
