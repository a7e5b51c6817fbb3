// Package logger provides colored console logging for gamewarden.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

var (
	defaultLogger *slog.Logger
	currentLevel  slog.Level = slog.LevelInfo
	currentOutput io.Writer  = os.Stderr
)

// consoleHandler is a slog.Handler that renders records as single colored
// lines for terminal use.
type consoleHandler struct {
	output io.Writer
	level  slog.Level
	attrs  []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var levelColor, levelLabel string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelLabel = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelLabel = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelLabel = colorBlue, "INFO"
	default:
		levelColor, levelLabel = colorGray, "DEBUG"
	}

	var sb strings.Builder
	sb.WriteString(r.Message)
	for _, a := range h.attrs {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value.Any())
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " %s=%v", a.Key, a.Value.Any())
		return true
	})

	_, err := fmt.Fprintf(h.output, "%s[%s]%s %s\n",
		levelColor, levelLabel, colorReset, sb.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &consoleHandler{output: h.output, level: h.level, attrs: merged}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	return h
}

func init() {
	rebuildLogger()
}

func rebuildLogger() {
	defaultLogger = slog.New(&consoleHandler{output: currentOutput, level: currentLevel})
}

// SetLevel configures the minimum level by name: "debug", "info", "warn",
// or "error". Unknown names fall back to info.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		currentLevel = slog.LevelDebug
	case "warn":
		currentLevel = slog.LevelWarn
	case "error":
		currentLevel = slog.LevelError
	default:
		currentLevel = slog.LevelInfo
	}
	rebuildLogger()
}

// SetOutput changes the output destination for logs.
func SetOutput(w io.Writer) {
	currentOutput = w
	rebuildLogger()
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// With returns a logger carrying additional attributes.
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}
