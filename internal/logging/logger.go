// Package logging provides a thin structured logger on top of log/slog and the
// HTTP middleware that attaches a request-scoped logger to each request.
package logging

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps slog.Logger with the field helpers used by handlers and services.
type Logger struct {
	slog *slog.Logger
}

// FileOptions configures the optional rotating log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger returns a stdout logger. Development uses the text handler at debug
// level, production the JSON handler at info level.
func NewLogger(isDev bool) *Logger {
	return newLogger(os.Stdout, isDev)
}

// NewFileLogger writes to stdout and to a lumberjack-rotated file.
func NewFileLogger(isDev bool, opts FileOptions) *Logger {
	if opts.Path == "" {
		return NewLogger(isDev)
	}

	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    withDefault(opts.MaxSizeMB, 100),
		MaxBackups: withDefault(opts.MaxBackups, 5),
		MaxAge:     withDefault(opts.MaxAgeDays, 30),
		Compress:   true,
	}

	return newLogger(io.MultiWriter(os.Stdout, file), isDev)
}

// NewWithWriter builds a logger over an arbitrary writer.
func NewWithWriter(w io.Writer, isDev bool) *Logger {
	return newLogger(w, isDev)
}

func newLogger(w io.Writer, isDev bool) *Logger {
	var handler slog.Handler
	if isDev {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return &Logger{slog: slog.New(handler)}
}

// WithFields returns a child logger that always includes fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{slog: l.slog.With(args...)}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// Log emits msg at an explicit level.
func (l *Logger) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	l.slog.Log(ctx, level, msg, args...)
}

// NewStdLogger adapts l for APIs that take a *log.Logger, such as http.Server.ErrorLog.
func NewStdLogger(l *Logger) *log.Logger {
	return slog.NewLogLogger(l.slog.Handler(), slog.LevelError)
}

func withDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
