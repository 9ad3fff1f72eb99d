package deci

import (
	"github.com/ChiliNoodles/Deci/diag"
	"go.uber.org/atomic"
)

// ParseOrNoneTag is the tag under which [ParseOrNone] reports rejected input.
const ParseOrNoneTag = "Deci.ParseOrNone"

// sinkHolder keeps the dynamic type stored in sink constant.
type sinkHolder struct {
	diag.Sink
}

var sink atomic.Value

func init() {
	sink.Store(sinkHolder{diag.ZapGlobal()})
}

// SetDiagnosticSink replaces the sink that receives reports from
// [ParseOrNone]. A nil sink discards reports. The default sink writes
// warnings to the global zap logger.
// It is safe to call SetDiagnosticSink concurrently with parsing.
func SetDiagnosticSink(s diag.Sink) {
	if s == nil {
		s = diag.Discard
	}
	sink.Store(sinkHolder{s})
}

func diagnosticSink() diag.Sink {
	return sink.Load().(sinkHolder).Sink
}

// ParseOrNone is like [Parse] but reports failure with a false second result
// instead of an error. The rejected input is reported to the diagnostic sink
// under [ParseOrNoneTag]; the report never affects the result.
func ParseOrNone(s string) (Deci, bool) {
	d, err := Parse(s)
	if err != nil {
		diagnosticSink().Report(ParseOrNoneTag, s, err)
		return Deci{}, false
	}
	return d, true
}

// ParseOrZero is like [Parse] but returns [Zero] for any input that
// cannot be parsed. Nothing is reported.
func ParseOrZero(s string) Deci {
	d, err := Parse(s)
	if err != nil {
		return Zero
	}
	return d
}
