// Package engine defines the arbitrary-precision arithmetic contract that the
// deci value type is layered on, together with the representation helpers
// shared by every implementation.
//
// Implementations live in the sub-packages bigint, apdengine and infengine.
// They never modify the coefficients they are given and always return
// freshly allocated ones.
package engine

import (
	"fmt"
	"math"
	"math/big"

	"github.com/pkg/errors"
)

// Num is the decimal value Coef / 10^Scale.
//
// A nil Coef is the number 0. Scale is never negative: values such as 1e+3
// are held as Coef=1000, Scale=0. Coef may be shared between several Num
// values and must be treated as read-only.
type Num struct {
	Coef  *big.Int
	Scale int32
}

// Mode is a rounding mode understood by every engine.
type Mode int

const (
	Up       Mode = iota // away from zero
	Down                 // towards zero
	Ceiling              // towards +Inf
	Floor                // towards -Inf
	HalfUp               // nearest, ties away from zero
	HalfDown             // nearest, ties towards zero
	HalfEven             // nearest, ties to even
)

func (m Mode) String() string {
	switch m {
	case Up:
		return "up"
	case Down:
		return "down"
	case Ceiling:
		return "ceiling"
	case Floor:
		return "floor"
	case HalfUp:
		return "half-up"
	case HalfDown:
		return "half-down"
	case HalfEven:
		return "half-even"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Check returns ErrInvalidMode if m is not one of the seven modes.
func (m Mode) Check() error {
	if m < Up || m > HalfEven {
		return errors.Wrapf(ErrInvalidMode, "%v", m)
	}
	return nil
}

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidMode    = errors.New("invalid rounding mode")
	ErrScaleRange     = errors.New("scale out of range")
)

// Engine performs decimal arithmetic on Num values.
//
// Add, Sub and Mul are exact. QuoPrec rounds the quotient to prec
// significant digits using half-even rounding. QuoScale and Rescale round to
// exactly scale digits after the decimal point using the given mode; a
// QuoScale result is the exact quotient rounded once, never rounded twice.
// Results are not reduced: trailing zeros are the caller's business.
type Engine interface {
	Name() string
	Add(x, y Num) (Num, error)
	Sub(x, y Num) (Num, error)
	Mul(x, y Num) (Num, error)
	QuoPrec(x, y Num, prec int) (Num, error)
	QuoScale(x, y Num, scale int32, mode Mode) (Num, error)
	Rescale(x Num, scale int32, mode Mode) (Num, error)
}

func (n Num) coef() *big.Int {
	if n.Coef == nil {
		return new(big.Int)
	}
	return n.Coef
}

// Int returns the coefficient of n. It is never nil and must not be modified.
func (n Num) Int() *big.Int {
	return n.coef()
}

// Sign returns -1, 0 or +1 depending on the sign of n.
func (n Num) Sign() int {
	if n.Coef == nil {
		return 0
	}
	return n.Coef.Sign()
}

// String returns n in plain notation, keeping trailing zeros.
func (n Num) String() string {
	digits := n.coef().String()
	neg := false
	if digits[0] == '-' {
		neg = true
		digits = digits[1:]
	}
	scale := int(n.Scale)
	if scale > 0 {
		if len(digits) <= scale {
			digits = zeros(scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

// Cmp compares x and y numerically and returns -1, 0 or +1.
func Cmp(x, y Num) int {
	// Special case: different signs
	if xs, ys := x.Sign(), y.Sign(); xs != ys {
		if xs < ys {
			return -1
		}
		return 1
	}
	a, b, _ := Align(x, y)
	return a.Cmp(b)
}

// Align returns the coefficients of x and y brought to a common scale,
// together with that scale. The returned integers may alias x.Coef or y.Coef.
func Align(x, y Num) (a, b *big.Int, scale int32) {
	a, b = x.coef(), y.coef()
	switch {
	case x.Scale < y.Scale:
		a = new(big.Int).Mul(a, Pow10(int(y.Scale-x.Scale)))
		return a, b, y.Scale
	case y.Scale < x.Scale:
		b = new(big.Int).Mul(b, Pow10(int(x.Scale-y.Scale)))
		return a, b, x.Scale
	}
	return a, b, x.Scale
}

// Reduce returns n with trailing fractional zeros removed.
//
// Zeros are stripped in chunks of 10^k: k starts at the number of trailing
// zero bits, which bounds the trailing decimal zeros, and halves whenever
// the chunk does not divide the coefficient.
func Reduce(n Num) Num {
	if n.Sign() == 0 {
		return Num{Coef: new(big.Int)}
	}
	if n.Scale == 0 {
		return n
	}
	// Fast reject: odd coefficients have no trailing zeros
	if n.Coef.Bit(0) != 0 {
		return n
	}
	q, r := new(big.Int), new(big.Int)
	coef := n.Coef
	scale := n.Scale
	k := int32(coef.TrailingZeroBits())
	for k > 0 && scale > 0 {
		if k > scale {
			k = scale
		}
		q.QuoRem(coef, Pow10(int(k)), r)
		if r.Sign() != 0 {
			k /= 2
			continue
		}
		coef, q = q, new(big.Int)
		scale -= k
	}
	return Num{Coef: coef, Scale: scale}
}

// FromExponent returns the Num equal to coef * 10^exp. The result takes
// ownership of coef.
func FromExponent(coef *big.Int, exp int64) (Num, error) {
	switch {
	case exp > 0:
		if exp > math.MaxInt32 {
			return Num{}, ErrScaleRange
		}
		return Num{Coef: coef.Mul(coef, Pow10(int(exp)))}, nil
	case -exp > math.MaxInt32:
		return Num{}, ErrScaleRange
	}
	return Num{Coef: coef, Scale: int32(-exp)}, nil
}

// Digits returns the number of decimal digits in |x|. Zero has one digit.
func Digits(x *big.Int) int {
	if x.Sign() == 0 {
		return 1
	}
	a := new(big.Int).Abs(x)
	// The bit length gives an estimate that is at most one digit off.
	n := int(float64(a.BitLen()) * math.Log10(2))
	if n < 1 {
		n = 1
	}
	for a.Cmp(Pow10(n)) >= 0 {
		n++
	}
	for n > 1 && a.Cmp(Pow10(n-1)) < 0 {
		n--
	}
	return n
}

// AdjustedExponent returns the exponent of the most significant digit of n,
// that is e such that 10^e <= |n| < 10^(e+1). It must not be called with 0.
func AdjustedExponent(n Num) int64 {
	return int64(Digits(n.coef())) - 1 - int64(n.Scale)
}

// QuoExponent returns the adjusted exponent of the exact quotient x/y.
// Neither x nor y may be 0.
func QuoExponent(x, y Num) int64 {
	e := AdjustedExponent(x) - AdjustedExponent(y)
	// Compare the significands: if the dividend's is smaller, the quotient
	// loses a digit.
	a := new(big.Int).Abs(x.coef())
	b := new(big.Int).Abs(y.coef())
	dx, dy := Digits(a), Digits(b)
	switch {
	case dx < dy:
		a.Mul(a, Pow10(dy-dx))
	case dy < dx:
		b.Mul(b, Pow10(dx-dy))
	}
	if a.Cmp(b) < 0 {
		e--
	}
	return e
}

// ScaleOf checks that a scale computed in int64 fits a Num.
func ScaleOf(s int64) (int32, error) {
	if s < 0 || s > math.MaxInt32 {
		return 0, errors.Wrapf(ErrScaleRange, "scale %d", s)
	}
	return int32(s), nil
}
