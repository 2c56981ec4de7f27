package plugin

import (
	"math"
	"testing"
)

func TestHintClamp(t *testing.T) {
	t.Parallel()

	cont := Hint{Min: -1, Max: 1, Default: 0.25}
	integer := Hint{Min: 0, Max: 7, Default: 0, Integer: true}

	tests := []struct {
		name string
		hint Hint
		in   float64
		want float64
	}{
		{"inside", cont, 0.5, 0.5},
		{"below", cont, -3, -1},
		{"above", cont, 3, 1},
		{"nan", cont, math.NaN(), 0.25},
		{"inf", cont, math.Inf(-1), 0.25},
		{"round down", integer, 2.4, 2},
		{"round up", integer, 2.6, 3},
		{"integer above", integer, 9.9, 7},
		{"integer below", integer, -0.7, 0},
	}

	for _, tt := range tests {
		if got := tt.hint.Clamp(tt.in); got != tt.want {
			t.Errorf("%s: Clamp(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestPortKindString(t *testing.T) {
	t.Parallel()

	if AudioInput.String() != "audio-in" || Control.String() != "control" || PortKind(9).String() != "PortKind(9)" {
		t.Fatal("unexpected port kind names")
	}
}
