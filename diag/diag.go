// Package diag defines the diagnostic sink that receives best-effort reports
// from fail-safe decimal operations, together with adapters for common
// logging libraries.
//
// Reports are fire-and-forget: a sink must not panic and its outcome never
// changes the result of the operation that reported.
package diag

import (
	"log/slog"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// Message is the log message written by every adapter.
const Message = "decimal input rejected"

// Sink receives diagnostic reports. tag names the reporting operation, input
// is the rejected text and err the reason it was rejected.
type Sink interface {
	Report(tag, input string, err error)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(tag, input string, err error)

func (f SinkFunc) Report(tag, input string, err error) {
	f(tag, input, err)
}

// Discard is a sink that drops every report.
var Discard Sink = SinkFunc(func(string, string, error) {})

type multi []Sink

func (m multi) Report(tag, input string, err error) {
	for _, s := range m {
		s.Report(tag, input, err)
	}
}

// Multi returns a sink that forwards every report to each of sinks in order.
// Nil sinks are skipped.
func Multi(sinks ...Sink) Sink {
	m := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

// Zap returns a sink that writes warnings to l.
func Zap(l *zap.Logger) Sink {
	return SinkFunc(func(tag, input string, err error) {
		l.Warn(Message, zap.String("tag", tag), zap.String("input", input), zap.Error(err))
	})
}

// ZapGlobal returns a sink that writes warnings to the global zap logger.
// The logger is looked up on every report, so loggers installed later with
// zap.ReplaceGlobals are honoured.
func ZapGlobal() Sink {
	return SinkFunc(func(tag, input string, err error) {
		Zap(zap.L()).Report(tag, input, err)
	})
}

// Logrus returns a sink that writes warnings to l.
func Logrus(l logrus.FieldLogger) Sink {
	return SinkFunc(func(tag, input string, err error) {
		l.WithFields(logrus.Fields{
			"tag":           tag,
			"input":         input,
			logrus.ErrorKey: err,
		}).Warn(Message)
	})
}

// Zerolog returns a sink that writes warnings to l.
func Zerolog(l zerolog.Logger) Sink {
	return SinkFunc(func(tag, input string, err error) {
		l.Warn().Str("tag", tag).Str("input", input).Err(err).Msg(Message)
	})
}

// Logr returns a sink that writes to l at verbosity 0.
// logr has no warning level, the error is attached as a value instead.
func Logr(l logr.Logger) Sink {
	return SinkFunc(func(tag, input string, err error) {
		l.Info(Message, "tag", tag, "input", input, "error", errString(err))
	})
}

// GoKit returns a sink that writes warnings to l.
func GoKit(l kitlog.Logger) Sink {
	return SinkFunc(func(tag, input string, err error) {
		_ = level.Warn(l).Log("msg", Message, "tag", tag, "input", input, "error", errString(err))
	})
}

// Slog returns a sink that writes warnings to l.
func Slog(l *slog.Logger) Sink {
	return SinkFunc(func(tag, input string, err error) {
		l.Warn(Message, "tag", tag, "input", input, "error", errString(err))
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
