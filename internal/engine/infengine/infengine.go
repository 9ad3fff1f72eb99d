// Package infengine implements the decimal engine on top of gopkg.in/inf.v0.
//
// inf.Dec already uses the coefficient and scale representation of
// engine.Num, and its QuoRound divides exactly before handing the remainder
// to the rounder, so conversions are cheap and every quotient is rounded
// once.
package infengine

import (
	"math/big"

	"github.com/ChiliNoodles/Deci/internal/engine"
	"github.com/pkg/errors"
	"gopkg.in/inf.v0"
)

// Engine is the inf.v0 backed engine. The zero value is ready to use.
type Engine struct{}

var _ engine.Engine = Engine{}

// New returns the inf.v0 backed engine.
func New() Engine {
	return Engine{}
}

func (Engine) Name() string {
	return "inf"
}

func rounder(mode engine.Mode) (inf.Rounder, error) {
	switch mode {
	case engine.Up:
		return inf.RoundUp, nil
	case engine.Down:
		return inf.RoundDown, nil
	case engine.Ceiling:
		return inf.RoundCeil, nil
	case engine.Floor:
		return inf.RoundFloor, nil
	case engine.HalfUp:
		return inf.RoundHalfUp, nil
	case engine.HalfDown:
		return inf.RoundHalfDown, nil
	case engine.HalfEven:
		return inf.RoundHalfEven, nil
	}
	return nil, errors.Wrapf(engine.ErrInvalidMode, "%v", mode)
}

func toDec(n engine.Num) *inf.Dec {
	return inf.NewDecBig(new(big.Int).Set(n.Int()), inf.Scale(n.Scale))
}

func fromDec(d *inf.Dec) (engine.Num, error) {
	return engine.FromExponent(new(big.Int).Set(d.UnscaledBig()), -int64(d.Scale()))
}

// Add calculates x + y.
func (Engine) Add(x, y engine.Num) (engine.Num, error) {
	return fromDec(new(inf.Dec).Add(toDec(x), toDec(y)))
}

// Sub calculates x - y.
func (Engine) Sub(x, y engine.Num) (engine.Num, error) {
	return fromDec(new(inf.Dec).Sub(toDec(x), toDec(y)))
}

// Mul calculates x * y.
func (Engine) Mul(x, y engine.Num) (engine.Num, error) {
	if _, err := engine.ScaleOf(int64(x.Scale) + int64(y.Scale)); err != nil {
		return engine.Num{}, err
	}
	return fromDec(new(inf.Dec).Mul(toDec(x), toDec(y)))
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
	scale := int64(prec) - 1 - engine.QuoExponent(x, y)
	if _, err := engine.ScaleOf(abs(scale)); err != nil {
		return engine.Num{}, err
	}
	z := new(inf.Dec).QuoRound(toDec(x), toDec(y), inf.Scale(scale), inf.RoundHalfEven)
	return fromDec(z)
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
	return fromDec(new(inf.Dec).QuoRound(toDec(x), toDec(y), inf.Scale(scale), r))
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
	return fromDec(new(inf.Dec).Round(toDec(x), inf.Scale(scale), r))
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
