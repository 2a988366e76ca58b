// Package logging provides structured logging using Go's slog package.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// ConversionIDKey is the context key for conversion job IDs.
	ConversionIDKey ContextKey = "conversion_id"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger

	// output is where InitLogger sends records.
	output io.Writer = os.Stderr

	// isTerminal is swapped in tests.
	isTerminal = func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
)

func init() {
	InitLogger(LevelInfo, FormatAuto)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatAuto picks text on a terminal and JSON otherwise.
	FormatAuto Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// ParseLevel converts a config string ("debug", "info", "warn", "error").
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat converts a config string ("auto", "json", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "text", "console":
		return FormatText, nil
	}
	return FormatAuto, fmt.Errorf("unknown log format %q", s)
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetOutput changes the writer used by subsequent InitLogger calls.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	opts := &slog.HandlerOptions{
		Level: level.slogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	if format == FormatAuto {
		format = FormatJSON
		if f, ok := output.(*os.File); ok && isTerminal(f) {
			format = FormatText
		}
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// WithConversionID adds a conversion job ID to the context.
func WithConversionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ConversionIDKey, id)
}

// GetConversionID retrieves the conversion job ID from the context.
func GetConversionID(ctx context.Context) string {
	if id, ok := ctx.Value(ConversionIDKey).(string); ok {
		return id
	}
	return ""
}

// LoggerFromContext returns a logger with context values attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := defaultLogger
	if id := GetConversionID(ctx); id != "" {
		logger = logger.With("conversion_id", id)
	}
	return logger
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// ConversionStart logs the beginning of a glossary conversion.
func ConversionStart(ctx context.Context, format, input, output string, args ...any) {
	allArgs := []any{
		"format", format,
		"input", input,
		"output", output,
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Info("conversion_start", allArgs...)
}

// ConversionDone logs a finished conversion with its duration.
func ConversionDone(ctx context.Context, format, output string, entries int, duration time.Duration, args ...any) {
	allArgs := []any{
		"format", format,
		"output", output,
		"entries", entries,
		"duration_ms", duration.Milliseconds(),
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Info("conversion_done", allArgs...)
}
