package deci

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/ChiliNoodles/Deci/internal/engine"
	"github.com/pkg/errors"
)

// Deci is an exact decimal number of arbitrary precision.
// The zero value is the numeric value of 0.
// It is designed to be safe for concurrent use by multiple goroutines.
//
// A Deci is a pair of parameters:
//
//   - Coefficient: a signed big integer, the value without the decimal point.
//   - Scale: a non-negative integer, the number of digits after the decimal point.
//
// For example, a Deci with a coefficient of 12345 and a scale of 2 represents
// the value 123.45.
//
// Every Deci returned by a constructor or an arithmetic method is canonical:
// trailing fractional zeros are removed, so 1.50 and 1.5 are held identically.
// [Deci.SetScale] is the only method that returns non-canonical values, because
// its purpose is to fix the number of displayed digits.
//
// Deci values must be compared with [Deci.Equal] or [Deci.Cmp], not with ==.
// Special values such as NaN, Infinity, or negative zeros are not supported.
type Deci struct {
	coef  *big.Int // the coefficient; nil means 0, never modified after construction
	scale int32    // the number of digits after the decimal point
}

// DivPrec is the number of significant digits kept by [Deci.Quo].
const DivPrec = 128

var (
	// ErrValidation is returned when an input fails a precondition: blank or
	// malformed text, a negative scale, a negative exponent, or an unknown
	// rounding mode.
	ErrValidation = errors.New("validation error")

	// ErrArithmetic is returned for mathematically undefined operations such
	// as division by zero.
	ErrArithmetic = errors.New("arithmetic error")
)

var (
	// Zero is the decimal 0, also the zero value of Deci.
	Zero = NewFromInt64(0)
	// One is the decimal 1.
	One = NewFromInt64(1)
	// Ten is the decimal 10.
	Ten = NewFromInt64(10)
)

// literal is the grammar accepted by [Parse], applied after the first comma
// is replaced by a period.
var literal = regexp.MustCompile(`^[-+]?(?:\d+([.,]\d*)?|[.,]\d+)$`)

func (d Deci) num() engine.Num {
	return engine.Num{Coef: d.coef, Scale: d.scale}
}

// canonical returns n with trailing fractional zeros removed.
func canonical(n engine.Num) Deci {
	n = engine.Reduce(n)
	return Deci{coef: n.Int(), scale: n.Scale}
}

// exact returns n as is.
func exact(n engine.Num) Deci {
	return Deci{coef: n.Int(), scale: n.Scale}
}

// New returns a decimal equal to coef / 10^scale.
// New returns an error wrapping [ErrValidation] if scale is negative.
func New(coef int64, scale int) (Deci, error) {
	if scale < 0 || scale > math.MaxInt32 {
		return Deci{}, errors.Wrapf(ErrValidation, "scale %v out of range", scale)
	}
	return canonical(engine.Num{Coef: big.NewInt(coef), Scale: int32(scale)}), nil
}

// NewFromBigInt returns a decimal equal to coef / 10^scale.
// The coefficient is copied, later changes to coef do not affect the result.
// NewFromBigInt returns an error wrapping [ErrValidation] if coef is nil or
// scale is negative.
func NewFromBigInt(coef *big.Int, scale int) (Deci, error) {
	switch {
	case coef == nil:
		return Deci{}, errors.Wrap(ErrValidation, "nil coefficient")
	case scale < 0 || scale > math.MaxInt32:
		return Deci{}, errors.Wrapf(ErrValidation, "scale %v out of range", scale)
	}
	return canonical(engine.Num{Coef: new(big.Int).Set(coef), Scale: int32(scale)}), nil
}

// NewFromInt64 converts an integer to a decimal. The conversion is exact.
func NewFromInt64(v int64) Deci {
	return MustParse(strconv.FormatInt(v, 10))
}

// NewFromInt32 converts an integer to a decimal. The conversion is exact.
func NewFromInt32(v int32) Deci {
	return NewFromInt64(int64(v))
}

// NewFromFloat64 converts a float to a decimal.
// The float is first rendered with the shortest decimal representation that
// reads back to the same float64, as [strconv.FormatFloat] does with
// precision -1, so NewFromFloat64(0.1) is 0.1 rather than the exact binary
// value 0.1000000000000000055511151231257827.
// The conversion is lossy by nature and the result should not be treated as
// the exact value of the float.
//
// NewFromFloat64 returns an error wrapping [ErrValidation] if f is NaN or
// an infinity.
func NewFromFloat64(f float64) (Deci, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Deci{}, errors.Wrapf(ErrValidation, "converting %v", f)
	}
	return Parse(strconv.FormatFloat(f, 'f', -1, 64))
}

// Parse converts a string to a decimal.
// The input string must match the following grammar, after its first comma
// has been replaced by a period:
//
//	^[-+]?(?:\d+([.,]\d*)?|[.,]\d+)$
//
// That is, an optional sign followed by digits with an optional decimal
// point, where at least one digit appears before or after the point.
// "12", "-1.5", "+.5", "5." and "3,25" are accepted.
// Exponents, grouping separators and surrounding whitespace are not.
//
// Parse returns an error wrapping [ErrValidation] if the string is blank or
// does not match the grammar.
func Parse(s string) (Deci, error) {
	if strings.TrimSpace(s) == "" {
		return Deci{}, errors.Wrap(ErrValidation, "parsing decimal: input must not be blank")
	}
	norm := strings.Replace(s, ",", ".", 1)
	if !literal.MatchString(norm) {
		return Deci{}, errors.Wrapf(ErrValidation, "parsing decimal %q: invalid format", s)
	}

	// Sign
	neg := false
	switch norm[0] {
	case '-':
		neg = true
		norm = norm[1:]
	case '+':
		norm = norm[1:]
	}

	// Integer and fractional digits
	whole, frac, _ := strings.Cut(norm, ".")
	frac = strings.TrimRight(frac, "0")
	if len(frac) > math.MaxInt32 {
		return Deci{}, errors.Wrapf(ErrValidation, "parsing decimal %q: too many digits", s)
	}
	digits := whole + frac
	if digits == "" {
		digits = "0"
	}
	coef, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Deci{}, errors.Wrapf(ErrValidation, "parsing decimal %q: invalid digits", s)
	}
	if neg {
		coef.Neg(coef)
	}
	return canonical(engine.Num{Coef: coef, Scale: int32(len(frac))}), nil
}

// String implements the [fmt.Stringer] interface and returns the plain
// decimal text of d. The returned string never uses scientific notation or
// grouping separators, carries a sign only when d is negative and a decimal
// point only when the scale is positive:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	significand    ::= digits '.' digits | digits
//	numeric-string ::= [sign] significand
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Deci) String() string {
	return d.num().String()
}

// Coef returns a copy of the coefficient of d.
func (d Deci) Coef() *big.Int {
	return new(big.Int).Set(d.num().Int())
}

// Scale returns the number of digits after the decimal point.
func (d Deci) Scale() int {
	return int(d.scale)
}

// IsInt returns true if the fractional part of d is zero.
func (d Deci) IsInt() bool {
	return engine.Reduce(d.num()).Scale == 0
}

// Float64 returns the nearest binary floating-point number rounded half to
// even. Values beyond the float64 range become an infinity.
// The conversion is lossy by nature.
func (d Deci) Float64() float64 {
	f, _ := strconv.ParseFloat(d.String(), 64)
	return f
}

// Int64 returns the integer part of d truncated towards zero.
// The second result is false if the integer part does not fit an int64.
func (d Deci) Int64() (int64, bool) {
	q := new(big.Int).Quo(d.num().Int(), engine.Pow10(int(d.scale)))
	if !q.IsInt64() {
		return 0, false
	}
	return q.Int64(), true
}

// Add returns the exact sum of d and e.
func (d Deci) Add(e Deci) Deci {
	n, err := eng.Add(d.num(), e.num())
	if err != nil {
		panic(fmt.Sprintf("Add(%v, %v) failed: %v", d, e, err))
	}
	return canonical(n)
}

// Sub returns the exact difference of d and e.
func (d Deci) Sub(e Deci) Deci {
	n, err := eng.Sub(d.num(), e.num())
	if err != nil {
		panic(fmt.Sprintf("Sub(%v, %v) failed: %v", d, e, err))
	}
	return canonical(n)
}

// Mul returns the exact product of d and e.
func (d Deci) Mul(e Deci) Deci {
	n, err := eng.Mul(d.num(), e.num())
	if err != nil {
		panic(fmt.Sprintf("Mul(%v, %v) failed: %v", d, e, err))
	}
	return canonical(n)
}

// Quo returns the quotient of d and e rounded half to even to [DivPrec]
// significant digits. Exact quotients such as 1/4 are returned exactly.
//
// Quo returns an error wrapping [ErrArithmetic] if e is zero.
func (d Deci) Quo(e Deci) (Deci, error) {
	if e.IsZero() {
		return Deci{}, errors.Wrapf(ErrArithmetic, "computing [%v / %v]: division by zero", d, e)
	}
	n, err := eng.QuoPrec(d.num(), e.num(), DivPrec)
	if err != nil {
		return Deci{}, errors.Wrapf(ErrArithmetic, "computing [%v / %v]: %v", d, e, err)
	}
	return canonical(n), nil
}

// QuoToScale returns the quotient of d and e rounded to scale digits after
// the decimal point using the given rounding mode. The quotient is rounded
// once, from its exact value. The result is canonical, so QuoToScale(1, 2,
// RoundHalfUp) is 1, not 1.00.
//
// QuoToScale returns an error wrapping:
//   - [ErrValidation] if scale is negative or mode is unknown;
//   - [ErrArithmetic] if e is zero.
func (d Deci) QuoToScale(e Deci, scale int, mode RoundingMode) (Deci, error) {
	s, m, err := checkScale(scale, mode)
	if err != nil {
		return Deci{}, errors.WithMessagef(err, "computing [%v / %v]", d, e)
	}
	if e.IsZero() {
		return Deci{}, errors.Wrapf(ErrArithmetic, "computing [%v / %v]: division by zero", d, e)
	}
	n, err := eng.QuoScale(d.num(), e.num(), s, m)
	if err != nil {
		return Deci{}, errors.Wrapf(ErrArithmetic, "computing [%v / %v]: %v", d, e, err)
	}
	return canonical(n), nil
}

// SetScale returns d rounded or padded to exactly scale digits after the
// decimal point. If d has fewer digits, zeros are appended; otherwise excess
// digits are discarded using the given rounding mode.
// The trailing zeros of the result are kept: SetScale(1.5, 3, m) is 1.500.
//
// SetScale returns an error wrapping [ErrValidation] if scale is negative or
// mode is unknown.
func (d Deci) SetScale(scale int, mode RoundingMode) (Deci, error) {
	s, m, err := checkScale(scale, mode)
	if err != nil {
		return Deci{}, errors.WithMessagef(err, "rescaling %v", d)
	}
	n, err := eng.Rescale(d.num(), s, m)
	if err != nil {
		return Deci{}, errors.Wrapf(ErrArithmetic, "rescaling %v: %v", d, err)
	}
	return exact(n), nil
}

func checkScale(scale int, mode RoundingMode) (int32, engine.Mode, error) {
	if scale < 0 || scale > math.MaxInt32 {
		return 0, 0, errors.Wrapf(ErrValidation, "scale %v out of range", scale)
	}
	m, err := mode.engineMode()
	if err != nil {
		return 0, 0, err
	}
	return int32(scale), m, nil
}

// Pow returns d raised to the non-negative integer power exp.
// The result is exact. Pow(0) is 1 for every d, including 0.
//
// Pow returns an error wrapping [ErrValidation] if exp is negative.
func (d Deci) Pow(exp int) (Deci, error) {
	if exp < 0 {
		return Deci{}, errors.Wrapf(ErrValidation, "computing [%v^%v]: negative exponent", d, exp)
	}
	res, base := One, d
	for exp > 0 {
		if exp&1 == 1 {
			res = res.Mul(base)
		}
		exp >>= 1
		if exp > 0 {
			base = base.Mul(base)
		}
	}
	return res, nil
}

// Sum returns the exact sum of ds, folded from left to right starting at
// [Zero]. The sum of no values is [Zero].
func Sum(ds ...Deci) Deci {
	total := Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}

// Neg returns d with opposite sign.
func (d Deci) Neg() Deci {
	return canonical(engine.Num{Coef: new(big.Int).Neg(d.num().Int()), Scale: d.scale})
}

// Abs returns the absolute value of d.
func (d Deci) Abs() Deci {
	return canonical(engine.Num{Coef: new(big.Int).Abs(d.num().Int()), Scale: d.scale})
}

// Sign returns:
//
//	-1 if d < 0
//	 0 if d == 0
//	+1 if d > 0
func (d Deci) Sign() int {
	return d.num().Sign()
}

// IsPos returns true if d > 0.
func (d Deci) IsPos() bool {
	return d.Sign() > 0
}

// IsNeg returns true if d < 0.
func (d Deci) IsNeg() bool {
	return d.Sign() < 0
}

// IsZero returns true if d == 0.
func (d Deci) IsZero() bool {
	return d.Sign() == 0
}

// Cmp compares d and e numerically and returns:
//
//	-1 if d < e
//	 0 if d == e
//	+1 if d > e
//
// Trailing zeros do not matter: 1.50 and 1.5 compare equal.
func (d Deci) Cmp(e Deci) int {
	return engine.Cmp(d.num(), e.num())
}

// Equal returns true if d and e have the same numeric value.
func (d Deci) Equal(e Deci) bool {
	return d.Cmp(e) == 0
}

// Hash returns a hash of the numeric value of d.
// Values that are [Deci.Equal] have the same hash.
func (d Deci) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(engine.Reduce(d.num()).String()))
	return h.Sum64()
}

// Max returns the larger of d and e. If they are equal, d is returned.
func (d Deci) Max(e Deci) Deci {
	if d.Cmp(e) >= 0 {
		return d
	}
	return e
}

// Min returns the smaller of d and e. If they are equal, d is returned.
func (d Deci) Min(e Deci) Deci {
	if d.Cmp(e) <= 0 {
		return d
	}
	return e
}
