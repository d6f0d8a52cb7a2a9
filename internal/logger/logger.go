// Package logger wraps logrus with the service's configuration.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Simplici0/windowquote/internal/config"
)

// Logger is the structured logger shared by every component.
type Logger struct {
	*logrus.Logger
}

// New builds a logger from cfg. An unknown level falls back to info; a log
// file that cannot be opened falls back to stdout with a warning.
func New(cfg *config.LoggerConfig) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.WithError(err).WithField("file", cfg.File).Warn("cannot open log file, using stdout")
		} else {
			l.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	return &Logger{Logger: l}
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}
