//go:build deci_inf && !deci_apd

package deci

import "github.com/ChiliNoodles/Deci/internal/engine/infengine"

var eng = infengine.New()
