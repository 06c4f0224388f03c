// Package logger wraps zerolog behind a small interface shared by the
// whole service. Startup code builds one Logger from config; the HTTP
// layer derives per-request child loggers from it.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output io.Writer
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: os.Stdout,
	}
}

// Logger is a thin wrapper keeping zerolog out of callers' import graphs.
type Logger struct {
	zlog zerolog.Logger
}

// New creates a Logger from cfg. A nil cfg uses DefaultConfig.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	var zlog zerolog.Logger
	if cfg.Format == "console" {
		// Human-readable output for development.
		cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		zlog = zerolog.New(cw).With().Timestamp().Logger()
	} else {
		// Structured JSON for production.
		zlog = zerolog.New(out).With().Timestamp().Logger()
	}
	zlog = zlog.Level(parseLevel(cfg.Level))

	return &Logger{zlog: zlog}
}

// WithContext stores the logger in ctx for retrieval via FromContext.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.zlog.WithContext(ctx)
}

// FromContext retrieves the Logger stored in ctx, or a default JSON
// logger if none was stored.
func FromContext(ctx context.Context) *Logger {
	zlog := zerolog.Ctx(ctx)
	if zlog.GetLevel() == zerolog.Disabled {
		return New(nil)
	}
	return &Logger{zlog: *zlog}
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, val string) *Logger {
	return &Logger{zlog: l.zlog.With().Str(key, val).Logger()}
}

func (l *Logger) Info(msg string) { l.zlog.Info().Msg(msg) }

func (l *Logger) Infof(format string, args ...any) {
	l.zlog.Info().Msgf(format, args...)
}

// Err logs msg at error level with the error attached.
func (l *Logger) Err(msg string, err error) {
	l.zlog.Error().Err(err).Msg(msg)
}

// Fatal logs msg with the error attached and exits the process.
func (l *Logger) Fatal(msg string, err error) {
	l.zlog.Fatal().Err(err).Msg(msg)
}

// HTTPEvent returns a raw zerolog event for the request-logging
// middleware, which attaches its own fields.
func (l *Logger) HTTPEvent() *zerolog.Event {
	return l.zlog.Info()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
