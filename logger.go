package pointfield

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with point field context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithField adds the mapped field name to the logger.
func (l *Logger) WithField(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("field", name),
	}
}

// LogDropped logs a value skipped under ignore_malformed.
func (l *Logger) LogDropped(ctx context.Context, err error) {
	l.WarnContext(ctx, "malformed point ignored",
		"error", err,
	)
}

// LogRejected logs a field occurrence that rejects its document.
func (l *Logger) LogRejected(ctx context.Context, err error) {
	l.DebugContext(ctx, "document rejected",
		"error", err,
	)
}

// LogSchema logs a schema built from field mappings.
func (l *Logger) LogSchema(ctx context.Context, fieldCount int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "schema build failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "schema built",
			"fields", fieldCount,
		)
	}
}

// LogBatch logs a batch parse operation.
func (l *Logger) LogBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch parse completed with rejected documents",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.DebugContext(ctx, "batch parse completed",
			"count", count,
		)
	}
}
