// Package enginetest provides the conformance suite every engine
// implementation must pass.
package enginetest

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ChiliNoodles/Deci/internal/engine"
)

// Num parses a plain decimal literal such as "-12.340" into a Num, keeping
// trailing zeros. It fails the test on malformed input.
func Num(t testing.TB, s string) engine.Num {
	t.Helper()
	scale := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		scale = len(s) - i - 1
		s = s[:i] + s[i+1:]
	}
	c, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("Num(%q) failed", s)
	}
	return engine.Num{Coef: c, Scale: int32(scale)}
}

var modes = []engine.Mode{
	engine.Up,
	engine.Down,
	engine.Ceiling,
	engine.Floor,
	engine.HalfUp,
	engine.HalfDown,
	engine.HalfEven,
}

// Run runs the conformance suite against e.
func Run(t *testing.T, e engine.Engine) {
	t.Run("Add", func(t *testing.T) { testAdd(t, e) })
	t.Run("Sub", func(t *testing.T) { testSub(t, e) })
	t.Run("Mul", func(t *testing.T) { testMul(t, e) })
	t.Run("QuoPrec", func(t *testing.T) { testQuoPrec(t, e) })
	t.Run("QuoScale", func(t *testing.T) { testQuoScale(t, e) })
	t.Run("Rescale", func(t *testing.T) { testRescale(t, e) })
	t.Run("Boundary", func(t *testing.T) { testBoundary(t, e) })
	t.Run("Immutable", func(t *testing.T) { testImmutable(t, e) })
}

func testAdd(t *testing.T, e engine.Engine) {
	tests := []struct {
		x, y, want string
	}{
		{"0", "0", "0"},
		{"1", "1", "2"},
		{"0.1", "0.2", "0.3"},
		{"1.5", "-1.5", "0"},
		{"-0.001", "1000", "999.999"},
		{"99999999999999999999999999999999999999", "1", "100000000000000000000000000000000000000"},
		{"0.00000000000000000000000000000000000001", "0.00000000000000000000000000000000000001", "0.00000000000000000000000000000000000002"},
		{"123456789.123456789", "987654321.987654321", "1111111111.11111111"},
	}
	for _, tt := range tests {
		x, y := Num(t, tt.x), Num(t, tt.y)
		got, err := e.Add(x, y)
		if err != nil {
			t.Errorf("Add(%v, %v) failed: %v", x, y, err)
			continue
		}
		if got := engine.Reduce(got).String(); got != tt.want {
			t.Errorf("Add(%v, %v) = %v, want %v", x, y, got, tt.want)
		}
	}
}

func testSub(t *testing.T, e engine.Engine) {
	tests := []struct {
		x, y, want string
	}{
		{"0", "0", "0"},
		{"1", "1", "0"},
		{"0.3", "0.1", "0.2"},
		{"-1.5", "1.5", "-3"},
		{"1000", "0.001", "999.999"},
		{"100000000000000000000000000000000000000", "1", "99999999999999999999999999999999999999"},
	}
	for _, tt := range tests {
		x, y := Num(t, tt.x), Num(t, tt.y)
		got, err := e.Sub(x, y)
		if err != nil {
			t.Errorf("Sub(%v, %v) failed: %v", x, y, err)
			continue
		}
		if got := engine.Reduce(got).String(); got != tt.want {
			t.Errorf("Sub(%v, %v) = %v, want %v", x, y, got, tt.want)
		}
	}
}

func testMul(t *testing.T, e engine.Engine) {
	tests := []struct {
		x, y, want string
	}{
		{"0", "5", "0"},
		{"2", "3", "6"},
		{"0.1", "0.1", "0.01"},
		{"-1.5", "2", "-3"},
		{"-0.5", "-0.5", "0.25"},
		{"12345678901234567890", "98765432109876543210", "1219326311370217952237463801111263526900"},
		{"0.000000000000000000001", "0.000000000000000000001", "0.000000000000000000000000000000000000000001"},
	}
	for _, tt := range tests {
		x, y := Num(t, tt.x), Num(t, tt.y)
		got, err := e.Mul(x, y)
		if err != nil {
			t.Errorf("Mul(%v, %v) failed: %v", x, y, err)
			continue
		}
		if got := engine.Reduce(got).String(); got != tt.want {
			t.Errorf("Mul(%v, %v) = %v, want %v", x, y, got, tt.want)
		}
	}
}

func testQuoPrec(t *testing.T, e engine.Engine) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x, y string
			prec int
			want string
		}{
			{"1", "3", 5, "0.33333"},
			{"2", "3", 5, "0.66667"},
			{"-2", "3", 5, "-0.66667"},
			{"1", "4", 5, "0.25"},
			{"10", "4", 1, "2"},
			{"30", "4", 1, "8"},
			{"1", "8", 2, "0.12"},
			{"3", "8", 2, "0.38"},
			{"123456", "1", 3, "123000"},
			{"0", "7", 5, "0"},
			{"1", "0.0001", 5, "10000"},
			{"1", "7", 128, "0." + strings.Repeat("142857", 21) + "14"},
			{"1", "3", 128, "0." + strings.Repeat("3", 128)},
		}
		for _, tt := range tests {
			x, y := Num(t, tt.x), Num(t, tt.y)
			got, err := e.QuoPrec(x, y, tt.prec)
			if err != nil {
				t.Errorf("QuoPrec(%v, %v, %v) failed: %v", x, y, tt.prec, err)
				continue
			}
			if got := engine.Reduce(got).String(); got != tt.want {
				t.Errorf("QuoPrec(%v, %v, %v) = %v, want %v", x, y, tt.prec, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, x := range []string{"0", "1", "-1"} {
			_, err := e.QuoPrec(Num(t, x), Num(t, "0"), 128)
			if !errors.Is(err, engine.ErrDivisionByZero) {
				t.Errorf("QuoPrec(%v, 0, 128) error = %v, want %v", x, err, engine.ErrDivisionByZero)
			}
		}
	})
}

func testQuoScale(t *testing.T, e engine.Engine) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x, y  string
			scale int32
			mode  engine.Mode
			want  string
		}{
			{"1", "3", 2, engine.HalfUp, "0.33"},
			{"2", "3", 2, engine.HalfUp, "0.67"},
			{"2", "3", 2, engine.Down, "0.66"},
			{"-2", "3", 2, engine.Down, "-0.66"},
			{"-2", "3", 2, engine.Floor, "-0.67"},
			{"-1", "3", 2, engine.Ceiling, "-0.33"},
			{"1", "3", 2, engine.Up, "0.34"},
			{"1", "8", 2, engine.HalfEven, "0.12"},
			{"3", "8", 2, engine.HalfEven, "0.38"},
			{"1", "8", 2, engine.HalfDown, "0.12"},
			{"1", "8", 2, engine.HalfUp, "0.13"},
			{"-1", "8", 2, engine.HalfUp, "-0.13"},
			{"10", "4", 0, engine.HalfEven, "2"},
			{"10", "4", 0, engine.HalfUp, "3"},
			{"10", "4", 3, engine.HalfUp, "2.500"},
			{"0", "3", 2, engine.Up, "0.00"},
			{"1", "1000", 2, engine.Down, "0.00"},
			{"1", "1000", 2, engine.Up, "0.01"},
			{"1", "1000", 2, engine.Floor, "0.00"},
			{"-1", "1000", 2, engine.Floor, "-0.01"},
			{"123456789", "0.001", 1, engine.HalfEven, "123456789000.0"},
			{"0.5", "1", 0, engine.HalfEven, "0"},
			{"1.5", "1", 0, engine.HalfEven, "2"},
			{"0.0000000000000000000001", "3", 21, engine.Up, "0.000000000000000000001"},
		}
		for _, tt := range tests {
			x, y := Num(t, tt.x), Num(t, tt.y)
			got, err := e.QuoScale(x, y, tt.scale, tt.mode)
			if err != nil {
				t.Errorf("QuoScale(%v, %v, %v, %v) failed: %v", x, y, tt.scale, tt.mode, err)
				continue
			}
			if got := got.String(); got != tt.want {
				t.Errorf("QuoScale(%v, %v, %v, %v) = %v, want %v", x, y, tt.scale, tt.mode, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		for _, mode := range modes {
			for _, x := range []string{"0", "1", "-1"} {
				_, err := e.QuoScale(Num(t, x), Num(t, "0"), 2, mode)
				if !errors.Is(err, engine.ErrDivisionByZero) {
					t.Errorf("QuoScale(%v, 0, 2, %v) error = %v, want %v", x, mode, err, engine.ErrDivisionByZero)
				}
			}
		}
		_, err := e.QuoScale(Num(t, "1"), Num(t, "3"), 2, engine.Mode(42))
		if !errors.Is(err, engine.ErrInvalidMode) {
			t.Errorf("QuoScale(1, 3, 2, 42) error = %v, want %v", err, engine.ErrInvalidMode)
		}
		_, err = e.QuoScale(Num(t, "1"), Num(t, "3"), -1, engine.HalfUp)
		if !errors.Is(err, engine.ErrScaleRange) {
			t.Errorf("QuoScale(1, 3, -1, half-up) error = %v, want %v", err, engine.ErrScaleRange)
		}
	})
}

func testRescale(t *testing.T, e engine.Engine) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			x     string
			scale int32
			mode  engine.Mode
			want  string
		}{
			// Single digit table
			{"5.5", 0, engine.Up, "6"},
			{"2.5", 0, engine.Up, "3"},
			{"1.6", 0, engine.Up, "2"},
			{"1.1", 0, engine.Up, "2"},
			{"1.0", 0, engine.Up, "1"},
			{"-1.0", 0, engine.Up, "-1"},
			{"-1.1", 0, engine.Up, "-2"},
			{"-2.5", 0, engine.Up, "-3"},
			{"5.5", 0, engine.Down, "5"},
			{"2.9", 0, engine.Down, "2"},
			{"-2.5", 0, engine.Down, "-2"},
			{"-5.5", 0, engine.Down, "-5"},
			{"5.5", 0, engine.Ceiling, "6"},
			{"2.1", 0, engine.Ceiling, "3"},
			{"-1.1", 0, engine.Ceiling, "-1"},
			{"-5.5", 0, engine.Ceiling, "-5"},
			{"5.5", 0, engine.Floor, "5"},
			{"1.1", 0, engine.Floor, "1"},
			{"-2.1", 0, engine.Floor, "-3"},
			{"-5.5", 0, engine.Floor, "-6"},
			{"5.5", 0, engine.HalfUp, "6"},
			{"2.5", 0, engine.HalfUp, "3"},
			{"1.6", 0, engine.HalfUp, "2"},
			{"1.1", 0, engine.HalfUp, "1"},
			{"-2.5", 0, engine.HalfUp, "-3"},
			{"-1.6", 0, engine.HalfUp, "-2"},
			{"5.5", 0, engine.HalfDown, "5"},
			{"2.5", 0, engine.HalfDown, "2"},
			{"2.6", 0, engine.HalfDown, "3"},
			{"-2.5", 0, engine.HalfDown, "-2"},
			{"-5.5", 0, engine.HalfDown, "-5"},
			{"5.5", 0, engine.HalfEven, "6"},
			{"2.5", 0, engine.HalfEven, "2"},
			{"3.5", 0, engine.HalfEven, "4"},
			{"1.6", 0, engine.HalfEven, "2"},
			{"-2.5", 0, engine.HalfEven, "-2"},
			{"-5.5", 0, engine.HalfEven, "-6"},

			// Padding
			{"1", 3, engine.HalfUp, "1.000"},
			{"-1.5", 4, engine.Down, "-1.5000"},
			{"0", 2, engine.Up, "0.00"},

			// Same scale
			{"1.25", 2, engine.Up, "1.25"},

			// Many digits
			{"0.12345678901234567890123456789", 20, engine.HalfEven, "0.12345678901234567890"},
			{"0.12345678901234567890523456789", 20, engine.HalfEven, "0.12345678901234567891"},
			{"9.999", 2, engine.HalfUp, "10.00"},
			{"0.0004", 2, engine.Up, "0.01"},
			{"-0.0004", 2, engine.HalfUp, "0.00"},
		}
		for _, tt := range tests {
			x := Num(t, tt.x)
			got, err := e.Rescale(x, tt.scale, tt.mode)
			if err != nil {
				t.Errorf("Rescale(%v, %v, %v) failed: %v", x, tt.scale, tt.mode, err)
				continue
			}
			if got := got.String(); got != tt.want {
				t.Errorf("Rescale(%v, %v, %v) = %v, want %v", x, tt.scale, tt.mode, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		_, err := e.Rescale(Num(t, "1.5"), 0, engine.Mode(-1))
		if !errors.Is(err, engine.ErrInvalidMode) {
			t.Errorf("Rescale(1.5, 0, -1) error = %v, want %v", err, engine.ErrInvalidMode)
		}
		_, err = e.Rescale(Num(t, "1.5"), -1, engine.HalfUp)
		if !errors.Is(err, engine.ErrScaleRange) {
			t.Errorf("Rescale(1.5, -1, half-up) error = %v, want %v", err, engine.ErrScaleRange)
		}
	})
}

func testImmutable(t *testing.T, e engine.Engine) {
	x, y := Num(t, "-12.5"), Num(t, "0.3")
	ops := map[string]func() (engine.Num, error){
		"Add":      func() (engine.Num, error) { return e.Add(x, y) },
		"Sub":      func() (engine.Num, error) { return e.Sub(x, y) },
		"Mul":      func() (engine.Num, error) { return e.Mul(x, y) },
		"QuoPrec":  func() (engine.Num, error) { return e.QuoPrec(x, y, 10) },
		"QuoScale": func() (engine.Num, error) { return e.QuoScale(x, y, 3, engine.HalfEven) },
		"Rescale":  func() (engine.Num, error) { return e.Rescale(x, 0, engine.Up) },
	}
	for name, op := range ops {
		got, err := op()
		if err != nil {
			t.Errorf("%v failed: %v", name, err)
			continue
		}
		got.Int().Add(got.Int(), big.NewInt(1))
		if x.String() != "-12.5" || y.String() != "0.3" {
			t.Errorf("%v modified its operands: %v, %v", name, x, y)
		}
	}
}

// boundaryDigits exceeds the exponent range of common decimal contexts,
// which stops at 10^±100000.
const boundaryDigits = 100005

func testBoundary(t *testing.T, e engine.Engine) {
	pow := func(n int) *big.Int { return new(big.Int).Set(engine.Pow10(n)) }
	add := func(x *big.Int, v int64) *big.Int { return new(big.Int).Add(x, big.NewInt(v)) }
	quo := func(x *big.Int, v int64) *big.Int { return new(big.Int).Quo(x, big.NewInt(v)) }

	one := engine.Num{Coef: big.NewInt(1)}
	three := engine.Num{Coef: big.NewInt(3)}
	tiny := engine.Num{Coef: big.NewInt(1), Scale: boundaryDigits}
	negTiny := engine.Num{Coef: big.NewInt(-1), Scale: boundaryDigits}
	huge := engine.Num{Coef: pow(boundaryDigits)}
	negHuge := engine.Num{Coef: new(big.Int).Neg(pow(boundaryDigits))}
	hugeHalf := engine.Num{Coef: add(pow(boundaryDigits+1), 5), Scale: 1}

	tests := []struct {
		name string
		op   func() (engine.Num, error)
		want engine.Num
	}{
		{"Add tiny", func() (engine.Num, error) { return e.Add(tiny, one) }, engine.Num{Coef: add(pow(boundaryDigits), 1), Scale: boundaryDigits}},
		{"Add huge", func() (engine.Num, error) { return e.Add(huge, one) }, engine.Num{Coef: add(pow(boundaryDigits), 1)}},
		{"Sub tiny", func() (engine.Num, error) { return e.Sub(one, tiny) }, engine.Num{Coef: add(pow(boundaryDigits), -1), Scale: boundaryDigits}},
		{"Mul tiny", func() (engine.Num, error) { return e.Mul(tiny, tiny) }, engine.Num{Coef: big.NewInt(1), Scale: 2 * boundaryDigits}},
		{"Mul huge", func() (engine.Num, error) { return e.Mul(huge, huge) }, engine.Num{Coef: pow(2 * boundaryDigits)}},
		{"QuoPrec tiny", func() (engine.Num, error) { return e.QuoPrec(one, huge, 5) }, tiny},
		{"QuoPrec huge", func() (engine.Num, error) { return e.QuoPrec(huge, three, 5) }, engine.Num{Coef: new(big.Int).Mul(big.NewInt(33333), pow(boundaryDigits-5))}},
		{"QuoScale thirds", func() (engine.Num, error) { return e.QuoScale(one, three, boundaryDigits, engine.HalfUp) }, engine.Num{Coef: quo(pow(boundaryDigits), 3), Scale: boundaryDigits}},
		{"QuoScale two thirds", func() (engine.Num, error) {
			return e.QuoScale(engine.Num{Coef: big.NewInt(2)}, three, boundaryDigits, engine.HalfUp)
		}, engine.Num{Coef: add(quo(new(big.Int).Mul(big.NewInt(2), pow(boundaryDigits)), 3), 1), Scale: boundaryDigits}},
		{"QuoScale huge floor", func() (engine.Num, error) {
			return e.QuoScale(negHuge, engine.Num{Coef: big.NewInt(7)}, 0, engine.Floor)
		}, engine.Num{Coef: new(big.Int).Neg(add(quo(pow(boundaryDigits), 7), 1))}},
		{"Rescale tiny up", func() (engine.Num, error) { return e.Rescale(tiny, 0, engine.Up) }, engine.Num{Coef: big.NewInt(1)}},
		{"Rescale tiny half up", func() (engine.Num, error) { return e.Rescale(tiny, 0, engine.HalfUp) }, engine.Num{Coef: big.NewInt(0)}},
		{"Rescale negative tiny ceiling", func() (engine.Num, error) { return e.Rescale(negTiny, 2, engine.Ceiling) }, engine.Num{Coef: big.NewInt(0), Scale: 2}},
		{"Rescale negative tiny floor", func() (engine.Num, error) { return e.Rescale(negTiny, 2, engine.Floor) }, engine.Num{Coef: big.NewInt(-1), Scale: 2}},
		{"Rescale tiny padding", func() (engine.Num, error) { return e.Rescale(tiny, boundaryDigits+5, engine.Down) }, engine.Num{Coef: big.NewInt(100000), Scale: boundaryDigits + 5}},
		{"Rescale huge half even", func() (engine.Num, error) { return e.Rescale(hugeHalf, 0, engine.HalfEven) }, huge},
		{"Rescale huge half up", func() (engine.Num, error) { return e.Rescale(hugeHalf, 0, engine.HalfUp) }, engine.Num{Coef: add(pow(boundaryDigits), 1)}},
	}
	for _, tt := range tests {
		got, err := tt.op()
		if err != nil {
			t.Errorf("%v failed: %v", tt.name, err)
			continue
		}
		if engine.Cmp(got, tt.want) != 0 {
			t.Errorf("%v returned a different value (scale %v, %v digits), want scale %v, %v digits",
				tt.name, got.Scale, engine.Digits(got.Int()), tt.want.Scale, engine.Digits(tt.want.Int()))
		}
	}
}
