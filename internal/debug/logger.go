// Package debug provides the process-wide debug logger, built on log/slog.
// Logging is off until Init(true) is called.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logger  = newLogger(io.Discard, false)
	enabled bool
	mu      sync.RWMutex
)

func newLogger(w io.Writer, enable bool) *slog.Logger {
	level := slog.LevelError + 1
	if enable {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Init switches debug logging to stderr on or off.
func Init(enable bool) {
	InitWriter(os.Stderr, enable)
}

// InitWriter is like Init but writes to w.
func InitWriter(w io.Writer, enable bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable
	if !enable {
		w = io.Discard
	}
	logger = newLogger(w, enable)
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return current().With(args...)
}

// Logger returns the underlying slog.Logger instance
func Logger() *slog.Logger {
	return current()
}

// Statement logs a composed SQL statement. args is nil for inline statements.
func Statement(op, table, sql string, args []any) {
	l := current()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"op", op, "table", table, "sql", sql}
	if args != nil {
		attrs = append(attrs, "args", args)
	}
	l.Debug("composed statement", attrs...)
}
