package bigint

import (
	"math/big"
	"sync"

	"github.com/ChiliNoodles/Deci/internal/engine"
)

// bint (Big INTeger) is a wrapper around big.Int.
type bint big.Int

func (z *bint) sign() int {
	return (*big.Int)(z).Sign()
}

func (z *bint) cmp(x *bint) int {
	return (*big.Int)(z).Cmp((*big.Int)(x))
}

func (z *bint) setBint(x *bint) {
	(*big.Int)(z).Set((*big.Int)(x))
}

// add calculates z = x + y.
func (z *bint) add(x, y *bint) {
	(*big.Int)(z).Add((*big.Int)(x), (*big.Int)(y))
}

// inc calculates z = x + 1.
func (z *bint) inc(x *bint) {
	z.add(x, (*bint)(engine.Pow10(0)))
}

// abs calculates z = |x|.
func (z *bint) abs(x *bint) {
	(*big.Int)(z).Abs((*big.Int)(x))
}

// dbl (Double) calculates z = x * 2.
func (z *bint) dbl(x *bint) {
	(*big.Int)(z).Lsh((*big.Int)(x), 1)
}

// mul calculates z = x * y.
func (z *bint) mul(x, y *bint) {
	(*big.Int)(z).Mul((*big.Int)(x), (*big.Int)(y))
}

// quoRem calculates z = ⌊x / y⌋, r = x - y * z for non-negative x and y.
func (z *bint) quoRem(x, y, r *bint) {
	(*big.Int)(z).QuoRem((*big.Int)(x), (*big.Int)(y), (*big.Int)(r))
}

func (z *bint) isOdd() bool {
	return (*big.Int)(z).Bit(0) != 0
}

// lsh (Left Shift) calculates z = x * 10^shift.
func (z *bint) lsh(x *bint, shift int) {
	z.mul(x, (*bint)(engine.Pow10(shift)))
}

// quoRound calculates z = round(x / y) for non-negative x and positive y.
// neg is the sign of the true quotient and only matters for the directed
// modes.
func (z *bint) quoRound(x, y *bint, neg bool, mode engine.Mode) error {
	r := getBint()
	defer putBint(r)
	z.quoRem(x, y, r)
	if r.sign() == 0 {
		return nil
	}
	// half compares the discarded fraction with one half.
	r.dbl(r)
	half := r.cmp(y)
	up, err := roundsAway(mode, neg, z.isOdd(), half)
	if err != nil {
		return err
	}
	if up {
		z.inc(z)
	}
	return nil
}

// rshRound (Right Shift) calculates z = round(x / 10^shift) for non-negative x.
func (z *bint) rshRound(x *bint, shift int, neg bool, mode engine.Mode) error {
	// Special cases
	switch {
	case x.sign() == 0:
		z.setBint(x)
		return nil
	case shift <= 0:
		z.setBint(x)
		return nil
	}
	// General case
	return z.quoRound(x, (*bint)(engine.Pow10(shift)), neg, mode)
}

// roundsAway reports whether an inexact magnitude must be incremented.
// half is the comparison of the discarded fraction with one half of the
// last retained unit.
func roundsAway(mode engine.Mode, neg, odd bool, half int) (bool, error) {
	switch mode {
	case engine.Up:
		return true, nil
	case engine.Down:
		return false, nil
	case engine.Ceiling:
		return !neg, nil
	case engine.Floor:
		return neg, nil
	case engine.HalfUp:
		return half >= 0, nil
	case engine.HalfDown:
		return half > 0, nil
	case engine.HalfEven:
		return half > 0 || (half == 0 && odd), nil
	}
	return false, engine.ErrInvalidMode
}

// bpool is a cache of reusable *big.Int instances.
var bpool = sync.Pool{
	New: func() any {
		return (*bint)(new(big.Int))
	},
}

// getBint obtains a *big.Int from the pool.
func getBint() *bint {
	return bpool.Get().(*bint)
}

// putBint returns the *big.Int into the pool.
func putBint(b *bint) {
	bpool.Put(b)
}
