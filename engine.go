package deci

import "github.com/ChiliNoodles/Deci/internal/engine"

var _ engine.Engine = eng

// EngineName returns the name of the arithmetic engine compiled into the
// package: "bigint" by default, "apd" with the deci_apd build tag and "inf"
// with the deci_inf build tag.
func EngineName() string {
	return eng.Name()
}
