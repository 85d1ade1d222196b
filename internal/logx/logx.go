// Package logx builds the slog logger used by the example programs.
//
// Options can be given directly or read from the environment:
//   - VB_LOG_LEVEL=debug|info|warn|error
//   - VB_LOG_FORMAT=console|json
//   - VB_LOG_FILE=<path> (adds a rotated JSON log file)
//   - VB_LOG_SOURCE=true|false
package logx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction. The zero value logs INFO and above
// as text.
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string // optional rotated log file
}

// FromEnv reads Options from VB_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("VB_LOG_LEVEL", "info"),
		Format:    getenv("VB_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("VB_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("VB_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// New builds a logger writing to console and, if opts.File is set, to a
// rotating file. The returned close function flushes and closes the file and
// is safe to call when no file is configured.
func New(opts Options, console io.Writer) (*slog.Logger, func() error) {
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level), AddSource: opts.AddSource}

	var handlers []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		handlers = append(handlers, slog.NewJSONHandler(console, hopts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(console, hopts))
	}

	closeFn := func() error { return nil }
	if file := strings.TrimSpace(opts.File); file != "" {
		w := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28}
		handlers = append(handlers, slog.NewJSONHandler(w, hopts))
		closeFn = w.Close
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn
	}
	return slog.New(fanout(handlers)), closeFn
}

// ParseLevel maps a level name to a slog level; unknown names are INFO.
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

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
