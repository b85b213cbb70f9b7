// Package logger builds the structured logger used by the scribe binary:
// JSON lines written to a rotating file.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level slog.Level

	// Path is the log file. Empty means ~/.config/scribe/scribe.log.
	Path string

	// Rotation limits, passed to lumberjack. Zero values use the defaults
	// below.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 7
)

// Logger is a slog.Logger backed by a rotating file. It also counts the
// warnings and errors it has seen so a UI can surface them.
type Logger struct {
	*slog.Logger

	Path   string
	writer *lumberjack.Logger
	counts *counts
}

type counts struct {
	warn atomic.Int64
	err  atomic.Int64
}

func New(opt Options) (*Logger, error) {
	path := opt.Path
	if path == "" {
		path = filepath.Join(DefaultDir(), "scribe.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(opt.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: orDefault(opt.MaxBackups, defaultMaxBackups),
		MaxAge:     orDefault(opt.MaxAgeDays, defaultMaxAgeDays),
		Compress:   true,
	}

	c := &counts{}
	h := &countingHandler{
		inner:  slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opt.Level}),
		counts: c,
	}
	return &Logger{
		Logger: slog.New(h),
		Path:   path,
		writer: w,
		counts: c,
	}, nil
}

// DefaultDir is ~/.config/scribe, or a directory under the temp dir when the
// home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "scribe")
}

func (l *Logger) Close() error {
	if l == nil || l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

// Counts returns how many warnings and errors have been logged.
func (l *Logger) Counts() (warn, err int) {
	return int(l.counts.warn.Load()), int(l.counts.err.Load())
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type countingHandler struct {
	inner  slog.Handler
	counts *counts
}

func (h *countingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *countingHandler) Handle(ctx context.Context, r slog.Record) error {
	switch {
	case r.Level >= slog.LevelError:
		h.counts.err.Add(1)
	case r.Level >= slog.LevelWarn:
		h.counts.warn.Add(1)
	}
	return h.inner.Handle(ctx, r)
}

func (h *countingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &countingHandler{inner: h.inner.WithAttrs(attrs), counts: h.counts}
}

func (h *countingHandler) WithGroup(name string) slog.Handler {
	return &countingHandler{inner: h.inner.WithGroup(name), counts: h.counts}
}
