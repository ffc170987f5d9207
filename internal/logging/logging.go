// Package logging configures the process logger and carries it through
// context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Options selects the log level and handler format.
type Options struct {
	Level string
	JSON  bool
}

var def atomic.Value

func init() {
	def.Store(newLogger(os.Stderr, Options{Level: "warn"}))
}

// Configure replaces the process logger. Output goes to stderr.
func Configure(opts Options) {
	ConfigureWriter(os.Stderr, opts)
}

// ConfigureWriter replaces the process logger, writing to w.
func ConfigureWriter(w io.Writer, opts Options) {
	def.Store(newLogger(w, opts))
}

func newLogger(w io.Writer, opts Options) *slog.Logger {
	cfg := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(w, cfg)
	} else {
		h = slog.NewTextHandler(w, cfg)
	}
	return slog.New(h)
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the process logger.
func L() *slog.Logger {
	l, _ := def.Load().(*slog.Logger)
	return l
}

type key struct{}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// FromContext returns the logger stored in ctx, or the process logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(key{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return L()
}
