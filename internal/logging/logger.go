// Package logging builds the application logger.
//
// The terminal belongs to the TUI, so log output goes to a rolling file
// rather than stdout/stderr.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // text, json, logfmt
	File       string // log file path; empty disables logging
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New creates a logger writing to the rolling file described by cfg.
// The returned closer flushes and closes the file; it is never nil.
func New(cfg Config) (*log.Logger, io.Closer) {
	if cfg.File == "" {
		return NewNop(), nopCloser{}
	}

	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return NewWithWriter(cfg, w), w
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           parseLevel(cfg.Level),
		Formatter:       parseFormat(cfg.Format),
		Prefix:          "marks",
	})
}

// NewNop returns a logger that discards everything.
func NewNop() *log.Logger {
	return log.New(io.Discard)
}

// WithOp returns a child logger tagged with an operation name and a fresh id,
// so every log line of one user action can be correlated.
func WithOp(logger *log.Logger, op string) *log.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With("op", op, "op_id", uuid.NewString())
}

// parseLevel converts a string log level to log.Level.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func parseFormat(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
