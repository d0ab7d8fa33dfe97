package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("nil writer defaults to stderr", func(t *testing.T) {
		if logger := NewLogger(nil); logger == nil {
			t.Fatal("expected a logger")
		}
	})

	t.Run("child logger carries fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "router")
		logger.Info("ready")

		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected child fields in output, got %q", buf.String())
		}
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected no output below error level, got %q", buf.String())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "folio.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Info("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected the log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected log output in file, got %q", data)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()

	if a == b {
		t.Error("expected unique IDs")
	}
	if len(a) != 36 {
		t.Errorf("expected a UUID string, got %q", a)
	}
}
