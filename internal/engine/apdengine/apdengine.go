// Package apdengine implements the decimal engine on top of
// github.com/cockroachdb/apd/v3.
//
// Exact operations work on apd.BigInt coefficients and need no context.
// Rounding operations use apd contexts, which round to a number of
// significant digits, so every operation derives a precision large enough
// for the result it needs. Quotients at a fixed scale are first computed
// with the 05up rounder at one digit more than required and then quantized
// with the requested mode; 05up keeps the information needed to round
// correctly a second time.
//
// apd limits adjusted exponents to [apd.MinExponent, apd.MaxExponent].
// Rounding operations whose operands or results fall outside that range
// divide on apd.BigInt instead and let a context round a small stand-in
// with the same last digit and the same position relative to one half.
package apdengine

import (
	"math"
	"math/big"

	"github.com/ChiliNoodles/Deci/internal/engine"
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// Engine is the apd backed engine. The zero value is ready to use.
type Engine struct{}

var _ engine.Engine = Engine{}

// New returns the apd backed engine.
func New() Engine {
	return Engine{}
}

func (Engine) Name() string {
	return "apd"
}

// newContext returns a context with the given precision and rounding and
// the widest exponent range apd allows.
func newContext(prec int64, rounding apd.Rounder) (*apd.Context, error) {
	if prec < 1 || prec > math.MaxUint32 {
		return nil, errors.Errorf("precision %d out of range", prec)
	}
	return &apd.Context{
		Precision:   uint32(prec),
		MaxExponent: apd.MaxExponent,
		MinExponent: apd.MinExponent,
		Traps:       apd.DefaultTraps,
		Rounding:    rounding,
	}, nil
}

// rounder maps an engine mode to the apd rounding algorithm.
func rounder(mode engine.Mode) (apd.Rounder, error) {
	switch mode {
	case engine.Up:
		return apd.RoundUp, nil
	case engine.Down:
		return apd.RoundDown, nil
	case engine.Ceiling:
		return apd.RoundCeiling, nil
	case engine.Floor:
		return apd.RoundFloor, nil
	case engine.HalfUp:
		return apd.RoundHalfUp, nil
	case engine.HalfDown:
		return apd.RoundHalfDown, nil
	case engine.HalfEven:
		return apd.RoundHalfEven, nil
	}
	return "", errors.Wrapf(engine.ErrInvalidMode, "%v", mode)
}

func toDecimal(n engine.Num) *apd.Decimal {
	d := new(apd.Decimal)
	c := n.Int()
	d.Coeff.SetMathBigInt(new(big.Int).Abs(c))
	d.Negative = c.Sign() < 0
	d.Exponent = -n.Scale
	return d
}

func fromDecimal(d *apd.Decimal) (engine.Num, error) {
	if d.Form != apd.Finite {
		return engine.Num{}, errors.Errorf("unexpected %v result", d.Form)
	}
	c := d.Coeff.MathBigInt()
	if d.Negative {
		c.Neg(c)
	}
	return engine.FromExponent(c, int64(d.Exponent))
}

// digits returns the number of digits in the coefficient of d.
func digits(d *apd.Decimal) int64 {
	return d.NumDigits()
}

// exponentMargin keeps results one or two digits longer than their
// operands inside the exponent range.
const exponentMargin = 2

// inRange reports whether every exponent lies well inside the range apd
// contexts accept.
func inRange(exps ...int64) bool {
	for _, e := range exps {
		if e <= apd.MinExponent+exponentMargin || e >= apd.MaxExponent-exponentMargin {
			return false
		}
	}
	return true
}

// bounds returns the adjusted exponent and the exponent of n.
func bounds(n engine.Num) (adj, exp int64) {
	return engine.AdjustedExponent(n), -int64(n.Scale)
}

func toBigInt(x *big.Int) *apd.BigInt {
	return new(apd.BigInt).SetMathBigInt(x)
}

func pow10(n int64) *apd.BigInt {
	return toBigInt(engine.Pow10(int(n)))
}

// Add calculates x + y.
func (Engine) Add(x, y engine.Num) (engine.Num, error) {
	a, b, scale := engine.Align(x, y)
	z := new(apd.BigInt).Add(toBigInt(a), toBigInt(b))
	return engine.Num{Coef: z.MathBigInt(), Scale: scale}, nil
}

// Sub calculates x - y.
func (Engine) Sub(x, y engine.Num) (engine.Num, error) {
	a, b, scale := engine.Align(x, y)
	z := new(apd.BigInt).Sub(toBigInt(a), toBigInt(b))
	return engine.Num{Coef: z.MathBigInt(), Scale: scale}, nil
}

// Mul calculates x * y.
func (Engine) Mul(x, y engine.Num) (engine.Num, error) {
	scale, err := engine.ScaleOf(int64(x.Scale) + int64(y.Scale))
	if err != nil {
		return engine.Num{}, err
	}
	z := new(apd.BigInt).Mul(toBigInt(x.Int()), toBigInt(y.Int()))
	return engine.Num{Coef: z.MathBigInt(), Scale: scale}, nil
}

// QuoPrec calculates x / y rounded half-to-even to prec significant digits.
func (Engine) QuoPrec(x, y engine.Num, prec int) (engine.Num, error) {
	switch {
	case prec < 1:
		return engine.Num{}, errors.Errorf("precision %d is not positive", prec)
	case y.Sign() == 0:
		return engine.Num{}, engine.ErrDivisionByZero
	case x.Sign() == 0:
		return engine.Num{Coef: new(big.Int)}, nil
	}
	xa, xe := bounds(x)
	ya, ye := bounds(y)
	qe := engine.QuoExponent(x, y)
	if !inRange(xa, xe, ya, ye, qe, qe-int64(prec)) {
		return quoPrecLarge(x, y, qe, prec)
	}

	c, err := newContext(int64(prec), apd.RoundHalfEven)
	if err != nil {
		return engine.Num{}, err
	}
	z := new(apd.Decimal)
	if _, err := c.Quo(z, toDecimal(x), toDecimal(y)); err != nil {
		return engine.Num{}, err
	}
	return fromDecimal(z)
}

// quoPrecLarge rounds the quotient at the position of its prec-th digit.
// When that position is left of the decimal point the divisor absorbs the
// shift and the quotient is scaled back up.
func quoPrecLarge(x, y engine.Num, qe int64, prec int) (engine.Num, error) {
	scale := int64(prec) - 1 - qe
	if scale >= 0 {
		return quoLarge(x, y, scale, apd.RoundHalfEven)
	}
	y = engine.Num{Coef: new(big.Int).Mul(y.Int(), engine.Pow10(int(-scale))), Scale: y.Scale}
	q, err := quoLarge(x, y, 0, apd.RoundHalfEven)
	if err != nil {
		return engine.Num{}, err
	}
	return engine.FromExponent(q.Coef, -scale)
}

// QuoScale calculates x / y rounded to scale digits after the decimal point.
func (Engine) QuoScale(x, y engine.Num, scale int32, mode engine.Mode) (engine.Num, error) {
	switch {
	case scale < 0:
		return engine.Num{}, errors.Wrapf(engine.ErrScaleRange, "scale %d", scale)
	case y.Sign() == 0:
		return engine.Num{}, engine.ErrDivisionByZero
	}
	r, err := rounder(mode)
	if err != nil {
		return engine.Num{}, err
	}
	if x.Sign() == 0 {
		return engine.Num{Coef: new(big.Int), Scale: scale}, nil
	}
	xa, xe := bounds(x)
	ya, ye := bounds(y)
	qe := engine.QuoExponent(x, y)
	if !inRange(xa, xe, ya, ye, qe, -int64(scale)-1) {
		return quoLarge(x, y, int64(scale), r)
	}

	// Integer digits of the quotient, plus the requested fraction, plus one
	// guard digit for the second rounding.
	intDigits := qe + 1
	if intDigits < 0 {
		intDigits = 0
	}
	prec := intDigits + int64(scale) + 1

	c, err := newContext(prec, apd.Round05Up)
	if err != nil {
		return engine.Num{}, err
	}
	q := new(apd.Decimal)
	if _, err := c.Quo(q, toDecimal(x), toDecimal(y)); err != nil {
		return engine.Num{}, err
	}
	return quantize(q, scale, r)
}

// quoLarge calculates x / y rounded to 10^-scale on apd.BigInt, for
// operands outside the exponent range of apd contexts.
func quoLarge(x, y engine.Num, scale int64, r apd.Rounder) (engine.Num, error) {
	num := new(apd.BigInt).Abs(toBigInt(x.Int()))
	den := new(apd.BigInt).Abs(toBigInt(y.Int()))
	// x/y * 10^scale = xc * 10^(ys+scale-xs) / yc
	shift := int64(y.Scale) + scale - int64(x.Scale)
	switch {
	case shift > 0:
		num.Mul(num, pow10(shift))
	case shift < 0:
		den.Mul(den, pow10(-shift))
	}
	q, err := roundQuo(num, den, x.Sign()*y.Sign() < 0, r)
	if err != nil {
		return engine.Num{}, err
	}
	return engine.FromExponent(q, -scale)
}

// Rescale rounds or pads x to exactly scale digits after the decimal point.
func (Engine) Rescale(x engine.Num, scale int32, mode engine.Mode) (engine.Num, error) {
	if scale < 0 {
		return engine.Num{}, errors.Wrapf(engine.ErrScaleRange, "scale %d", scale)
	}
	r, err := rounder(mode)
	if err != nil {
		return engine.Num{}, err
	}
	xa, xe := bounds(x)
	if !inRange(xa, xe, -int64(scale)) {
		return rescaleLarge(x, scale, r)
	}
	return quantize(toDecimal(x), scale, r)
}

// rescaleLarge is Rescale on apd.BigInt, for operands outside the exponent
// range of apd contexts.
func rescaleLarge(x engine.Num, scale int32, r apd.Rounder) (engine.Num, error) {
	coef := toBigInt(x.Int())
	switch {
	case scale == x.Scale:
		return engine.Num{Coef: coef.MathBigInt(), Scale: scale}, nil
	case scale > x.Scale:
		coef.Mul(coef, pow10(int64(scale-x.Scale)))
		return engine.Num{Coef: coef.MathBigInt(), Scale: scale}, nil
	}
	neg := coef.Sign() < 0
	q, err := roundQuo(coef.Abs(coef), pow10(int64(x.Scale-scale)), neg, r)
	if err != nil {
		return engine.Num{}, err
	}
	return engine.Num{Coef: q, Scale: scale}, nil
}

// roundQuo returns num / den rounded to an integer with r, negated when neg
// is set. num must be non-negative and den positive.
//
// Rounding depends only on the sign, the parity of the last digit and how
// the remainder compares with one half, so r is applied by an apd context
// to the stand-in last + 0.25, last + 0.5 or last + 0.75.
func roundQuo(num, den *apd.BigInt, neg bool, r apd.Rounder) (*big.Int, error) {
	q, rem := new(apd.BigInt), new(apd.BigInt)
	q.QuoRem(num, den, rem)
	if rem.Sign() != 0 {
		last := new(apd.BigInt).Rem(q, apd.NewBigInt(10))
		frac := int64(50)
		switch rem.Lsh(rem, 1).Cmp(den) {
		case -1:
			frac = 25
		case 1:
			frac = 75
		}
		stand := new(apd.Decimal)
		stand.Coeff.Mul(last, apd.NewBigInt(100))
		stand.Coeff.Add(&stand.Coeff, apd.NewBigInt(frac))
		stand.Exponent = -2
		stand.Negative = neg

		c, err := newContext(4, r)
		if err != nil {
			return nil, err
		}
		rounded := new(apd.Decimal)
		if _, err := c.Quantize(rounded, stand, 0); err != nil {
			return nil, err
		}
		q.Sub(q, last)
		q.Add(q, &rounded.Coeff)
	}
	z := q.MathBigInt()
	if neg {
		z.Neg(z)
	}
	return z, nil
}

func quantize(d *apd.Decimal, scale int32, r apd.Rounder) (engine.Num, error) {
	pad := int64(scale) + int64(d.Exponent)
	if pad < 0 {
		pad = 0
	}
	c, err := newContext(digits(d)+pad+1, r)
	if err != nil {
		return engine.Num{}, err
	}
	z := new(apd.Decimal)
	if _, err := c.Quantize(z, d, -scale); err != nil {
		return engine.Num{}, err
	}
	return fromDecimal(z)
}
