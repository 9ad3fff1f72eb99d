package deci

import (
	"fmt"
	"strings"

	"github.com/ChiliNoodles/Deci/internal/engine"
	"github.com/pkg/errors"
)

// RoundingMode selects how discarded digits affect the last retained digit.
// A tie is a discarded fraction of exactly one half of the last retained unit.
type RoundingMode int

const (
	RoundUp       RoundingMode = iota // away from zero: 2.1 → 3, -2.1 → -3
	RoundDown                         // towards zero: 2.9 → 2, -2.9 → -2
	RoundCeiling                      // towards +Inf: 2.1 → 3, -2.9 → -2
	RoundFloor                        // towards -Inf: 2.9 → 2, -2.1 → -3
	RoundHalfUp                       // nearest, ties away from zero: 2.5 → 3, -2.5 → -3
	RoundHalfDown                     // nearest, ties towards zero: 2.5 → 2, -2.5 → -2
	RoundHalfEven                     // nearest, ties to even: 2.5 → 2, 3.5 → 4
)

var modeNames = [...]string{
	RoundUp:       "UP",
	RoundDown:     "DOWN",
	RoundCeiling:  "CEILING",
	RoundFloor:    "FLOOR",
	RoundHalfUp:   "HALF_UP",
	RoundHalfDown: "HALF_DOWN",
	RoundHalfEven: "HALF_EVEN",
}

// String returns the upper snake case name of m, such as "HALF_EVEN".
func (m RoundingMode) String() string {
	if m < RoundUp || m > RoundHalfEven {
		return fmt.Sprintf("RoundingMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseRoundingMode converts a name such as "HALF_EVEN", "half-even" or
// "half_even" to a rounding mode. Names are case-insensitive.
//
// ParseRoundingMode returns an error wrapping [ErrValidation] if the name
// is unknown.
func ParseRoundingMode(s string) (RoundingMode, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for m, n := range modeNames {
		if n == name {
			return RoundingMode(m), nil
		}
	}
	return 0, errors.Wrapf(ErrValidation, "unknown rounding mode %q", s)
}

// MarshalText implements [encoding.TextMarshaler] interface.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (m RoundingMode) MarshalText() ([]byte, error) {
	if _, err := m.engineMode(); err != nil {
		return nil, err
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see [ParseRoundingMode].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (m *RoundingMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseRoundingMode(string(text))
	return err
}

func (m RoundingMode) engineMode() (engine.Mode, error) {
	switch m {
	case RoundUp:
		return engine.Up, nil
	case RoundDown:
		return engine.Down, nil
	case RoundCeiling:
		return engine.Ceiling, nil
	case RoundFloor:
		return engine.Floor, nil
	case RoundHalfUp:
		return engine.HalfUp, nil
	case RoundHalfDown:
		return engine.HalfDown, nil
	case RoundHalfEven:
		return engine.HalfEven, nil
	}
	return 0, errors.Wrapf(ErrValidation, "unknown rounding mode %v", m)
}
