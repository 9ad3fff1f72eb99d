//go:build deci_apd

package deci

import "github.com/ChiliNoodles/Deci/internal/engine/apdengine"

var eng = apdengine.New()
