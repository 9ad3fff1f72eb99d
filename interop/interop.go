// Package interop converts decimals between deci and other decimal
// libraries.
//
// Conversions to and from shopspring/decimal and cockroachdb/apd are exact
// in both directions. govalues/decimal holds at most 19 digits, so
// conversions into it fail for values it cannot represent exactly.
package interop

import (
	"math/big"

	"github.com/ChiliNoodles/Deci"
	"github.com/cockroachdb/apd/v3"
	govalues "github.com/govalues/decimal"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ToShopspring converts d to a shopspring decimal.
func ToShopspring(d deci.Deci) decimal.Decimal {
	return decimal.NewFromBigInt(d.Coef(), -int32(d.Scale()))
}

// FromShopspring converts s to a canonical deci value.
func FromShopspring(s decimal.Decimal) (deci.Deci, error) {
	return fromExponent(s.Coefficient(), int64(s.Exponent()))
}

// ToAPD converts d to a finite apd decimal.
func ToAPD(d deci.Deci) *apd.Decimal {
	c := d.Coef()
	r := new(apd.Decimal)
	r.Coeff.SetMathBigInt(new(big.Int).Abs(c))
	r.Negative = c.Sign() < 0
	r.Exponent = -int32(d.Scale())
	return r
}

// FromAPD converts a to a canonical deci value.
// FromAPD returns an error wrapping [deci.ErrValidation] if a is nil, NaN or
// an infinity.
func FromAPD(a *apd.Decimal) (deci.Deci, error) {
	switch {
	case a == nil:
		return deci.Deci{}, errors.Wrap(deci.ErrValidation, "converting nil apd decimal")
	case a.Form != apd.Finite:
		return deci.Deci{}, errors.Wrapf(deci.ErrValidation, "converting apd %v", a.Form)
	}
	c := a.Coeff.MathBigInt()
	if a.Negative {
		c.Neg(c)
	}
	return fromExponent(c, int64(a.Exponent))
}

// ToGovalues converts d to a govalues decimal.
// ToGovalues returns an error if d has more digits than govalues can hold.
// Values are never rounded.
func ToGovalues(d deci.Deci) (govalues.Decimal, error) {
	g, err := govalues.Parse(d.String())
	if err != nil {
		return govalues.Decimal{}, errors.Wrapf(err, "converting %v", d)
	}
	if g.String() != d.String() {
		return govalues.Decimal{}, errors.Errorf("converting %v: govalues rounded it to %v", d, g)
	}
	return g, nil
}

// FromGovalues converts g to a canonical deci value. The conversion is exact.
func FromGovalues(g govalues.Decimal) deci.Deci {
	return deci.MustParse(g.String())
}

// fromExponent returns coef * 10^exp.
func fromExponent(coef *big.Int, exp int64) (deci.Deci, error) {
	if exp > 0 {
		coef = new(big.Int).Mul(coef, new(big.Int).Exp(big.NewInt(10), big.NewInt(exp), nil))
		exp = 0
	}
	return deci.NewFromBigInt(coef, int(-exp))
}
