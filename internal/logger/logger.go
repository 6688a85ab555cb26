package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger defines the interface for structured logging
type Logger interface {
	Debug(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

// Config controls where and how much is logged
type Config struct {
	Debug  bool
	Output io.Writer
}

// New creates a logger. Output defaults to stderr so stdout only carries JSON.
func New(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := charmlog.WarnLevel
	if cfg.Debug {
		level = charmlog.DebugLevel
	}
	return &charmLogger{l: charmlog.NewWithOptions(out, charmlog.Options{
		Level:           level,
		Prefix:          "jsonnorm",
		ReportTimestamp: cfg.Debug,
		TimeFormat:      "15:04:05",
	})}
}

// Discard returns a logger that drops everything
func Discard() Logger {
	return New(Config{Output: io.Discard})
}

type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
