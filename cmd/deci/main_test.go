package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DECI_SCALE", "DECI_ROUNDING", "LOG_LEVEL", "LOG_FILE"} {
		t.Setenv(k, "")
	}
}

func TestRun(t *testing.T) {
	clearEnv(t)

	t.Run("success", func(t *testing.T) {
		tests := []struct {
			args []string
			want string
		}{
			{[]string{"eval", "* 10 + 1.23 4.56"}, "57.9"},
			{[]string{"eval", "-", "1", "0.1"}, "0.9"},
			{[]string{"-scale", "2", "-rounding", "half_up", "eval", "/ 2 3"}, "0.67"},
			{[]string{"-scale", "2", "-rounding", "floor", "eval", "/ -2 3"}, "-0.67"},
			{[]string{"round", "2.5"}, "2"},
			{[]string{"-rounding", "half-up", "round", "2.5"}, "3"},
			{[]string{"-scale", "3", "round", "1.5"}, "1.500"},
			{[]string{"sum", "1.10", "2,20", "-0.3"}, "3"},
			{[]string{"sum"}, "0"},
			{[]string{"-lenient", "sum", "1.10", "abc", "2.20"}, "3.3"},
		}
		for _, tt := range tests {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 0 {
				t.Errorf("run(%q) = %v, want 0, stderr: %s", tt.args, code, stderr.String())
				continue
			}
			if got := strings.TrimSpace(stdout.String()); got != tt.want {
				t.Errorf("run(%q) printed %q, want %q", tt.args, got, tt.want)
			}
		}
	})

	t.Run("lenient logs rejected input", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-lenient", "sum", "abc"}, &stdout, &stderr); code != 0 {
			t.Fatalf("run = %v, want 0", code)
		}
		if !strings.Contains(stderr.String(), `"input":"abc"`) {
			t.Errorf("stderr = %q, want a warning about abc", stderr.String())
		}
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deci.yaml")
		if err := os.WriteFile(path, []byte("scale: 1\nrounding: ceiling\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-config", path, "round", "1.21"}, &stdout, &stderr); code != 0 {
			t.Fatalf("run = %v, stderr: %s", code, stderr.String())
		}
		if got := strings.TrimSpace(stdout.String()); got != "1.3" {
			t.Errorf("run printed %q, want %q", got, "1.3")
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			args []string
			want int
		}{
			{[]string{}, 2},
			{[]string{"-bogus"}, 2},
			{[]string{"-rounding", "sideways", "round", "1"}, 2},
			{[]string{"-config", "/nonexistent/deci.yaml", "sum", "1"}, 1},
			{[]string{"frobnicate"}, 1},
			{[]string{"eval", "/ 1 0"}, 1},
			{[]string{"round"}, 1},
			{[]string{"round", "x"}, 1},
			{[]string{"sum", "1", "x"}, 1},
		}
		for _, tt := range tests {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run(%q) = %v, want %v", tt.args, got, tt.want)
			}
			if stdout.Len() != 0 {
				t.Errorf("run(%q) printed %q", tt.args, stdout.String())
			}
		}
	})
}
