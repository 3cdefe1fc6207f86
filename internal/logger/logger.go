// Package logger builds the zerolog logger shared by every jsonmonitor
// component.
package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/jsonmonitor/internal/common/errorwrapper"
	"github.com/aleister1102/jsonmonitor/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Option adjusts New.
type Option func(*options)

type options struct {
	console io.Writer
}

// WithConsoleOutput sends console entries to w instead of stderr.
func WithConsoleOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.console = w
		}
	}
}

// New builds the process logger from cfg. An unknown level is reported on the
// returned logger and info is used instead; only an unusable log file fails.
func New(cfg config.LogConfig, opts ...Option) (zerolog.Logger, error) {
	o := options{console: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	level, levelErr := parseLevel(cfg.Level)

	outputs := []io.Writer{formatWriter(cfg.Format, o.console, !cfg.NoColor)}
	if cfg.File != "" {
		file, err := rotatingFile(cfg)
		if err != nil {
			return zerolog.Nop(), errorwrapper.WrapError(err, "failed to open log file")
		}
		outputs = append(outputs, formatWriter(cfg.Format, file, false))
	}

	l := zerolog.New(zerolog.MultiLevelWriter(outputs...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	// net/http reports through the standard logger
	stdlog.SetOutput(l)
	stdlog.SetFlags(0)

	if levelErr != nil {
		l.Warn().Err(levelErr).Str("level", cfg.Level).Msg("Falling back to info log level")
	}
	return l, nil
}

// Component returns a child of base tagged with the component name.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

func parseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.NewValidationError("level", s, "unknown log level")
	}
	return level, nil
}

// formatWriter renders entries as raw JSON lines or through zerolog's console
// layout. "text" is the console layout without colors.
func formatWriter(format string, out io.Writer, color bool) io.Writer {
	switch strings.ToLower(format) {
	case "json":
		return out
	case "text":
		color = false
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: !color}
}

func rotatingFile(cfg config.LogConfig) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.RotationSizeMB(),
		MaxBackups: cfg.RotationBackups(),
		LocalTime:  true,
	}, nil
}
