package log

import (
	"context"
	"log/slog"
	"os"
)

// defaultLog is the package-level [Logger] used by the package-level
// logging functions below.
var defaultLog = Make(os.Stderr)

// Config reconfigures the package-level default logger with the given
// options, applied on top of its current configuration.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// DefaultContextProvider returns the context used by the non-Context logging
// variants (both the [Logger] methods and the package-level functions).
// It returns [context.TODO] unless overridden.
var DefaultContextProvider = func() context.Context { return context.TODO() }

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) { defaultLog.Debug(msg, attrs...) }

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) { defaultLog.Info(msg, attrs...) }

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) { defaultLog.Warn(msg, attrs...) }

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) { defaultLog.Error(msg, attrs...) }

// Trace logs a message at Trace level using the default logger.
func Trace(msg string, attrs ...slog.Attr) { defaultLog.Trace(msg, attrs...) }

// DebugContext logs a message at Debug level with ctx using the default
// logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

// InfoContext logs a message at Info level with ctx using the default
// logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

// WarnContext logs a message at Warn level with ctx using the default
// logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(ctx, msg, attrs...)
}

// ErrorContext logs a message at Error level with ctx using the default
// logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

// TraceContext logs a message at Trace level with ctx using the default
// logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(ctx, msg, attrs...)
}

// Default returns the current package-level default [Logger].
func Default() Logger { return defaultLog }
