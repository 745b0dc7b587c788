package scoring

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{1.4000000000000001, 2, 1.4},
		{0.8999999999999999, 2, 0.9},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{2.675, 2, 2.67},
		{60.416666666666664, 1, 60.4},
		{0.5, 0, 0},
		{1.5, 0, 2},
		{-1.255, 2, -1.25},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestRoundNonFinite(t *testing.T) {
	if !math.IsNaN(Round(math.NaN(), 2)) {
		t.Error("expected NaN to pass through")
	}
	if !math.IsInf(Round(math.Inf(1), 2), 1) {
		t.Error("expected +Inf to pass through")
	}
}
