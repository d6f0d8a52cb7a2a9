package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Simplici0/windowquote/internal/config"
)

func TestLogger_Defaults(t *testing.T) {
	log := New(&config.LoggerConfig{Level: "bogus", Format: "json"})
	if log == nil {
		t.Fatalf("logger is nil")
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", log.GetLevel())
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter, got %T", log.Formatter)
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.log")

	log := New(&config.LoggerConfig{Level: "debug", Format: "text", File: path})
	log.WithField("reference", "abc").Debug("quotation saved")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "quotation saved") || !strings.Contains(string(data), "reference=abc") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestLogger_WithFieldsAndError(t *testing.T) {
	log := Discard()
	entry := log.WithFields(logrus.Fields{"key": "value"})
	if entry.Data["key"] != "value" {
		t.Fatalf("fields not attached: %v", entry.Data)
	}
	errEntry := log.WithError(errors.New("fail"))
	if errEntry.Data[logrus.ErrorKey] == nil {
		t.Fatalf("error not attached")
	}
}
