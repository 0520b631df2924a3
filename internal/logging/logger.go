package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"mixfetch/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// FilePath enables the rotated file sink when set.
	FilePath      string
	MaxSizeMB     int
	MaxBackups    int
	RetentionDays int
	// Mirror receives a console-formatted copy of every record when non-nil.
	Mirror      io.Writer
	Development bool
}

// New constructs a slog logger using the provided options. The returned closer
// releases the rotated file sink and must be called when the logger is retired.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}
	if format != "console" && format != "json" {
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	var handlers []slog.Handler
	closer := io.Closer(nopCloser{})

	if path := strings.TrimSpace(opts.FilePath); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
		rotator := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.RetentionDays,
		}
		closer = rotator
		if format == "json" {
			handlers = append(handlers, newJSONHandler(rotator, levelVar, addSource))
		} else {
			handlers = append(handlers, newPrettyHandler(rotator, levelVar, addSource))
		}
	}

	if opts.Mirror != nil {
		handlers = append(handlers, newPrettyHandler(opts.Mirror, levelVar, addSource))
	}

	if len(handlers) == 0 {
		handlers = append(handlers, newPrettyHandler(os.Stderr, levelVar, addSource))
	}

	return slog.New(newFanoutHandler(handlers...)), closer, nil
}

// NewFromConfig creates a logger writing to the configured log directory. When
// mirror is non-nil records are also written there in console form.
func NewFromConfig(cfg *config.Config, mirror io.Writer) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		return nil, nil, errors.New("logging: config is required")
	}
	return New(Options{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		FilePath:      cfg.LogPath(),
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		MaxBackups:    cfg.Logging.MaxBackups,
		RetentionDays: cfg.Logging.RetentionDays,
		Mirror:        mirror,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
