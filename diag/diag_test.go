package diag

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-logr/logr/funcr"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errTest = errors.New("invalid format")

type report struct {
	Tag, Input, Err string
}

func TestSinkFunc(t *testing.T) {
	var got []report
	s := SinkFunc(func(tag, input string, err error) {
		got = append(got, report{tag, input, err.Error()})
	})
	s.Report("Deci.ParseOrNone", "abc", errTest)
	want := []report{{"Deci.ParseOrNone", "abc", "invalid format"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestMulti(t *testing.T) {
	var got []string
	first := SinkFunc(func(tag, input string, err error) { got = append(got, "first:"+input) })
	second := SinkFunc(func(tag, input string, err error) { got = append(got, "second:"+input) })
	Multi(first, nil, Discard, second).Report("tag", "x", errTest)
	want := []string{"first:x", "second:x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Zap(zap.New(core)).Report("Deci.ParseOrNone", "1..2", errTest)

	entries := logs.AllUntimed()
	if len(entries) != 1 {
		t.Fatalf("got %v entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel {
		t.Errorf("level = %v, want %v", e.Level, zapcore.WarnLevel)
	}
	if e.Message != Message {
		t.Errorf("message = %q, want %q", e.Message, Message)
	}
	fields := e.ContextMap()
	want := map[string]interface{}{
		"tag":   "Deci.ParseOrNone",
		"input": "1..2",
		"error": "invalid format",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields mismatch (-want, +got):\n%s", diff)
	}
}

func TestZapGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := ZapGlobal()
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	s.Report("tag", "input", errTest)
	if got := logs.FilterField(zap.String("input", "input")).Len(); got != 1 {
		t.Errorf("got %v entries after ReplaceGlobals, want 1", got)
	}
}

func TestLogrus(t *testing.T) {
	l, hook := logrustest.NewNullLogger()
	Logrus(l).Report("Deci.ParseOrNone", "--1", errTest)

	e := hook.LastEntry()
	if e == nil {
		t.Fatal("no entry logged")
	}
	if e.Level != logrus.WarnLevel {
		t.Errorf("level = %v, want %v", e.Level, logrus.WarnLevel)
	}
	if e.Message != Message {
		t.Errorf("message = %q, want %q", e.Message, Message)
	}
	if e.Data["tag"] != "Deci.ParseOrNone" || e.Data["input"] != "--1" || e.Data[logrus.ErrorKey] != errTest {
		t.Errorf("fields = %v", e.Data)
	}
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	Zerolog(zerolog.New(&buf)).Report("Deci.ParseOrNone", "x", errTest)

	got := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"tag":"Deci.ParseOrNone"`,
		`"input":"x"`,
		`"error":"invalid format"`,
		`"message":"` + Message + `"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestLogr(t *testing.T) {
	var got []string
	l := funcr.New(func(prefix, args string) {
		got = append(got, args)
	}, funcr.Options{})
	Logr(l).Report("Deci.ParseOrNone", "x", errTest)

	if len(got) != 1 {
		t.Fatalf("got %v lines, want 1", len(got))
	}
	for _, want := range []string{`"tag"="Deci.ParseOrNone"`, `"input"="x"`, `"error"="invalid format"`} {
		if !strings.Contains(got[0], want) {
			t.Errorf("output %q does not contain %q", got[0], want)
		}
	}
}

func TestGoKit(t *testing.T) {
	var buf bytes.Buffer
	GoKit(kitlog.NewLogfmtLogger(&buf)).Report("Deci.ParseOrNone", "x", errTest)

	got := buf.String()
	for _, want := range []string{"level=warn", "tag=Deci.ParseOrNone", "input=x", `error="invalid format"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestSlog(t *testing.T) {
	var buf bytes.Buffer
	Slog(slog.New(slog.NewTextHandler(&buf, nil))).Report("Deci.ParseOrNone", "x", nil)

	got := buf.String()
	for _, want := range []string{"level=WARN", "tag=Deci.ParseOrNone", "input=x", `error=""`} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}
