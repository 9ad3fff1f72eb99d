// Package bigint implements the decimal engine directly on math/big.
//
// Every quotient is computed as an exact integer division of suitably
// shifted coefficients, and the remainder decides the rounding. This is the
// engine compiled into deci by default.
package bigint

import (
	"math/big"

	"github.com/ChiliNoodles/Deci/internal/engine"
	"github.com/pkg/errors"
)

// Engine is the math/big backed engine. The zero value is ready to use.
type Engine struct{}

var _ engine.Engine = Engine{}

// New returns the math/big backed engine.
func New() Engine {
	return Engine{}
}

func (Engine) Name() string {
	return "bigint"
}

// Add calculates x + y.
func (Engine) Add(x, y engine.Num) (engine.Num, error) {
	a, b, scale := engine.Align(x, y)
	return engine.Num{Coef: new(big.Int).Add(a, b), Scale: scale}, nil
}

// Sub calculates x - y.
func (Engine) Sub(x, y engine.Num) (engine.Num, error) {
	a, b, scale := engine.Align(x, y)
	return engine.Num{Coef: new(big.Int).Sub(a, b), Scale: scale}, nil
}

// Mul calculates x * y.
func (Engine) Mul(x, y engine.Num) (engine.Num, error) {
	scale, err := engine.ScaleOf(int64(x.Scale) + int64(y.Scale))
	if err != nil {
		return engine.Num{}, err
	}
	return engine.Num{Coef: new(big.Int).Mul(x.Int(), y.Int()), Scale: scale}, nil
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
	// The quotient has exactly prec digits when its last one sits at
	// 10^(e - prec + 1).
	e := engine.QuoExponent(x, y)
	return quo(x, y, int64(prec)-1-e, engine.HalfEven)
}

// QuoScale calculates x / y rounded to scale digits after the decimal point.
func (Engine) QuoScale(x, y engine.Num, scale int32, mode engine.Mode) (engine.Num, error) {
	switch {
	case scale < 0:
		return engine.Num{}, errors.Wrapf(engine.ErrScaleRange, "scale %d", scale)
	case y.Sign() == 0:
		return engine.Num{}, engine.ErrDivisionByZero
	}
	if err := mode.Check(); err != nil {
		return engine.Num{}, err
	}
	return quo(x, y, int64(scale), mode)
}

// quo calculates x / y rounded to 10^-scale. The scale may be negative, in
// which case the result is brought back to a non-negative scale.
func quo(x, y engine.Num, scale int64, mode engine.Mode) (engine.Num, error) {
	var (
		dcoef, ecoef, fcoef *bint
		neg                 bool
	)

	dcoef = (*bint)(new(big.Int))
	ecoef = (*bint)(new(big.Int))
	fcoef = (*bint)(new(big.Int))
	dcoef.abs((*bint)(x.Int()))
	ecoef.abs((*bint)(y.Int()))

	// Sign
	neg = x.Sign()*y.Sign() < 0

	// Alignment: x/y * 10^scale = xc * 10^(ys+scale-xs) / yc
	shift := int64(y.Scale) + scale - int64(x.Scale)
	switch {
	case shift > 0:
		dcoef.lsh(dcoef, int(shift))
	case shift < 0:
		ecoef.lsh(ecoef, int(-shift))
	}

	// Coefficient
	if err := fcoef.quoRound(dcoef, ecoef, neg, mode); err != nil {
		return engine.Num{}, err
	}
	if neg {
		(*big.Int)(fcoef).Neg((*big.Int)(fcoef))
	}
	return engine.FromExponent((*big.Int)(fcoef), -scale)
}

// Rescale rounds or pads x to exactly scale digits after the decimal point.
func (Engine) Rescale(x engine.Num, scale int32, mode engine.Mode) (engine.Num, error) {
	if scale < 0 {
		return engine.Num{}, errors.Wrapf(engine.ErrScaleRange, "scale %d", scale)
	}
	if err := mode.Check(); err != nil {
		return engine.Num{}, err
	}

	coef := (*bint)(new(big.Int))
	coef.abs((*bint)(x.Int()))
	neg := x.Sign() < 0

	// Rounding
	switch {
	case scale == x.Scale:
		coef.setBint((*bint)(x.Int()))
		return engine.Num{Coef: (*big.Int)(coef), Scale: scale}, nil
	case scale > x.Scale:
		coef.lsh(coef, int(scale-x.Scale))
	default:
		if err := coef.rshRound(coef, int(x.Scale-scale), neg, mode); err != nil {
			return engine.Num{}, err
		}
	}

	if neg {
		(*big.Int)(coef).Neg((*big.Int)(coef))
	}
	return engine.Num{Coef: (*big.Int)(coef), Scale: scale}, nil
}
