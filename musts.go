package deci

import "fmt"

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding decimals.
func MustParse(s string) Deci {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return d
}

// MustQuo is like [Deci.Quo] but panics if computing error.
func (d Deci) MustQuo(e Deci) Deci {
	f, err := d.Quo(e)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", e, err))
	}
	return f
}

// MustQuoToScale is like [Deci.QuoToScale] but panics if computing error.
func (d Deci) MustQuoToScale(e Deci, scale int, mode RoundingMode) Deci {
	f, err := d.QuoToScale(e, scale, mode)
	if err != nil {
		panic(fmt.Sprintf("MustQuoToScale(%v, %v, %v) failed: %v", e, scale, mode, err))
	}
	return f
}

// MustSetScale is like [Deci.SetScale] but panics if rounding error.
func (d Deci) MustSetScale(scale int, mode RoundingMode) Deci {
	f, err := d.SetScale(scale, mode)
	if err != nil {
		panic(fmt.Sprintf("MustSetScale(%v, %v) failed: %v", scale, mode, err))
	}
	return f
}

// MustPow is like [Deci.Pow] but panics if computing error.
func (d Deci) MustPow(exp int) Deci {
	f, err := d.Pow(exp)
	if err != nil {
		panic(fmt.Sprintf("MustPow(%v) failed: %v", exp, err))
	}
	return f
}
