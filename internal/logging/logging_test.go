package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
	}
	for s, want := range tests {
		got, err := ParseLevel(s)
		if err != nil {
			t.Errorf("ParseLevel(%q) failed: %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Errorf("ParseLevel(\"loud\") did not fail")
	}
}

func TestNew(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		var buf bytes.Buffer
		log, closeLog, err := New(Options{Level: "warn", Output: &buf})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		log.Info("hidden")
		log.Warn("shown")
		if err := closeLog(); err != nil {
			t.Fatalf("closing the logger failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("got %d entries, want 1: %q", len(lines), buf.String())
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("entry %q is not JSON: %v", lines[0], err)
		}
		if entry["msg"] != "shown" || entry["level"] != "warn" {
			t.Errorf("entry = %v, want msg shown at level warn", entry)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "deci.log")
		var buf bytes.Buffer
		log, closeLog, err := New(Options{File: path, Output: &buf})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		log.Info("to both")
		if err := closeLog(); err != nil {
			t.Fatalf("closing the logger failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if !strings.Contains(string(data), "to both") || !strings.Contains(buf.String(), "to both") {
			t.Errorf("entry missing: file %q, output %q", data, buf.String())
		}

		// A closed file is reopened by the next write, so entries written
		// after removing it land in a new file.
		if err := os.Remove(path); err != nil {
			t.Fatalf("removing %s: %v", path, err)
		}
		log.Info("after close")
		if err := closeLog(); err != nil {
			t.Fatalf("closing the logger again failed: %v", err)
		}
		data, err = os.ReadFile(path)
		if err != nil {
			t.Fatalf("log file was not reopened: %v", err)
		}
		if got := string(data); !strings.Contains(got, "after close") || strings.Contains(got, "to both") {
			t.Errorf("reopened file = %q, want only the entry written after close", got)
		}
	})

	t.Run("error", func(t *testing.T) {
		if _, _, err := New(Options{Level: "loud"}); err == nil {
			t.Errorf("New(loud) did not fail")
		}
	})
}
