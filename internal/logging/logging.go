// Package logging builds the slog loggers used by the CLI and the MCP server.
//
// Logs never go to stdout: the MCP transport owns it. When a log file is
// configured it is rotated by lumberjack.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel = "IMAGE_EDITOR_LOG_LEVEL"
	EnvFile  = "IMAGE_EDITOR_LOG_FILE"
	EnvJSON  = "IMAGE_EDITOR_LOG_JSON"
)

// Config selects where and how logs are written.
type Config struct {
	Level string // DEBUG, INFO, WARN or ERROR
	File  string // empty means stderr
	JSON  bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// DefaultConfig logs text at INFO to stderr.
func DefaultConfig() Config {
	return Config{
		Level:      "INFO",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// ConfigFromEnv overlays the IMAGE_EDITOR_LOG_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv(EnvFile); v != "" {
		cfg.File = v
	}
	switch strings.ToLower(os.Getenv(EnvJSON)) {
	case "1", "true", "yes":
		cfg.JSON = true
	}
	return cfg
}

// ParseLevel accepts the slog level names in any case.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Logger returns a logger writing to w at level. Attributes stored in the
// context with AppendCtx are added to every record logged with that context.
func Logger(w io.Writer, json bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if json {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(contextHandler{h})
}

// Open builds the logger described by cfg. The returned closer releases the
// log file and must be called on shutdown; it is a no-op for stderr.
//
// An invalid level falls back to INFO and is reported as the error alongside
// a usable logger.
func Open(cfg Config) (*slog.Logger, io.Closer, error) {
	level, levelErr := ParseLevel(cfg.Level)

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w, closer = lj, lj
	}
	return Logger(w, cfg.JSON, level), closer, levelErr
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type ctxKey struct{}

// AppendCtx returns a context carrying attrs in addition to any attributes
// already stored by a previous call.
func AppendCtx(ctx context.Context, attrs ...slog.Attr) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	prev, _ := ctx.Value(ctxKey{}).([]slog.Attr)
	merged := make([]slog.Attr, 0, len(prev)+len(attrs))
	merged = append(merged, prev...)
	merged = append(merged, attrs...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

// contextHandler adds the AppendCtx attributes to each record.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
