package bigint

import (
	"testing"

	"github.com/ChiliNoodles/Deci/internal/engine"
	"github.com/ChiliNoodles/Deci/internal/engine/enginetest"
)

func TestEngine(t *testing.T) {
	enginetest.Run(t, New())
}

func TestRoundsAway(t *testing.T) {
	tests := []struct {
		mode engine.Mode
		neg  bool
		odd  bool
		half int
		want bool
	}{
		{engine.Up, false, false, -1, true},
		{engine.Down, true, true, 1, false},
		{engine.Ceiling, false, false, -1, true},
		{engine.Ceiling, true, false, 1, false},
		{engine.Floor, true, false, -1, true},
		{engine.Floor, false, false, 1, false},
		{engine.HalfUp, false, false, 0, true},
		{engine.HalfUp, false, false, -1, false},
		{engine.HalfDown, false, false, 0, false},
		{engine.HalfDown, false, false, 1, true},
		{engine.HalfEven, false, false, 0, false},
		{engine.HalfEven, false, true, 0, true},
		{engine.HalfEven, false, false, 1, true},
	}
	for _, tt := range tests {
		got, err := roundsAway(tt.mode, tt.neg, tt.odd, tt.half)
		if err != nil {
			t.Errorf("roundsAway(%v, %v, %v, %v) failed: %v", tt.mode, tt.neg, tt.odd, tt.half, err)
			continue
		}
		if got != tt.want {
			t.Errorf("roundsAway(%v, %v, %v, %v) = %v, want %v", tt.mode, tt.neg, tt.odd, tt.half, got, tt.want)
		}
	}
	if _, err := roundsAway(engine.Mode(7), false, false, 0); err == nil {
		t.Errorf("roundsAway(Mode(7)) did not fail")
	}
}
