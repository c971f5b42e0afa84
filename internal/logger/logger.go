package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// default logger instance
	defaultLogger *slog.Logger
)

// initializes the logger based on environment. Output goes to a log
// file rather than stderr: the TUI owns the terminal and writes there
// would corrupt the alternate screen.
func init() {
	env := os.Getenv("ENVIRONMENT")

	out := logOutput()

	var handler slog.Handler

	if env == "production" {
		// production: JSON output for structured logging
		opts := &slog.HandlerOptions{
			Level: slog.LevelInfo, // INFO and above in production
		}
		handler = slog.NewJSONHandler(out, opts)
	} else {
		// development: human-readable text output
		opts := &slog.HandlerOptions{
			Level: slog.LevelDebug, // DEBUG and above in development
		}
		handler = slog.NewTextHandler(out, opts)
	}

	defaultLogger = slog.New(handler)
}

func logOutput() io.Writer {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return io.Discard
	}

	dir := filepath.Join(cacheDir, "voiceai")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return io.Discard
	}

	f, err := os.OpenFile(filepath.Join(dir, "client.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}

	return f
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// logs a debug message
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs a fatal error with error and exits
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
