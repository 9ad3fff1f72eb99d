//go:build !deci_apd && !deci_inf

package deci

import "github.com/ChiliNoodles/Deci/internal/engine/bigint"

var eng = bigint.New()
