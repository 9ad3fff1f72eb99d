package deci

import (
	"fmt"
	"strings"
)

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%f, %s, %v: -123.456
//	%q:        "-123.456"
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
//
// Precision is only supported for %f verb.
// The default precision is equal to the actual scale of the decimal.
// Excess digits are rounded half to even, missing digits are padded with zeros.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (d Deci) Format(state fmt.State, verb rune) {

	// Rescaling
	if verb == 'f' || verb == 'F' {
		if p, ok := state.Precision(); ok {
			if r, err := d.SetScale(p, RoundHalfEven); err == nil {
				d = r
			}
		}
	}

	// Digits without sign
	digits := strings.TrimPrefix(d.String(), "-")

	// Arithmetic sign
	sign := ""
	switch {
	case d.IsNeg():
		sign = "-"
	case state.Flag('+'):
		sign = "+"
	case state.Flag(' '):
		sign = " "
	}

	// Quotes
	quote := ""
	if verb == 'q' || verb == 'Q' {
		quote = `"`
	}

	// Padding
	width := len(quote) + len(sign) + len(digits) + len(quote)
	lspaces, tspaces, lzeroes := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeroes = w - width
		default:
			lspaces = w - width
		}
	}

	var buf strings.Builder
	buf.WriteString(strings.Repeat(" ", lspaces))
	buf.WriteString(quote)
	buf.WriteString(sign)
	buf.WriteString(strings.Repeat("0", lzeroes))
	buf.WriteString(digits)
	buf.WriteString(quote)
	buf.WriteString(strings.Repeat(" ", tspaces))

	// Writing result
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V', 'f', 'F':
		state.Write([]byte(buf.String()))
	default:
		fmt.Fprintf(state, "%%!%c(deci.Deci=%s)", verb, buf.String())
	}
}
