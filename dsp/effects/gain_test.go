package effects

import (
	"math"
	"testing"
)

func TestGainPreGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db   float64
		want float64
	}{
		{0, 1},
		{20, 10},
		{-20, 0.1},
		{40, 100},
	}

	for _, tt := range tests {
		g, err := NewGain(WithGainDB(tt.db))
		if err != nil {
			t.Fatalf("NewGain(%g) error = %v", tt.db, err)
		}

		if got := g.PreGain(); math.Abs(got-tt.want) > 1e-12*tt.want {
			t.Errorf("PreGain() at %g dB = %v, want %v", tt.db, got, tt.want)
		}

		l, r := g.ProcessFrame(0.3, -0.4)
		if l != 0.3 || r != -0.4 {
			t.Errorf("ProcessFrame() = (%v, %v), want identity", l, r)
		}
	}
}

func TestGainValidationAndClamp(t *testing.T) {
	t.Parallel()

	for _, db := range []float64{-41, 41, math.NaN()} {
		if _, err := NewGain(WithGainDB(db)); err == nil {
			t.Errorf("NewGain(%g) expected error", db)
		}
	}

	g, err := NewGain()
	if err != nil {
		t.Fatal(err)
	}

	g.SetGainDB(100)

	if g.GainDB() != maxGainDB {
		t.Fatalf("GainDB() = %v, want %v", g.GainDB(), maxGainDB)
	}
}

func TestShiftGainTable(t *testing.T) {
	t.Parallel()

	for n := minShift; n <= maxShift; n++ {
		if got, want := ShiftGain(n), math.Ldexp(1, n); got != want {
			t.Errorf("ShiftGain(%d) = %v, want %v", n, got, want)
		}
	}

	for _, n := range []int{-17, 17, -1000, 1 << 20} {
		if got := ShiftGain(n); got != 1 {
			t.Errorf("ShiftGain(%d) = %v, want 1", n, got)
		}
	}
}

func TestBitShiftGainIsExact(t *testing.T) {
	t.Parallel()

	b, err := NewBitShiftGain(WithShift(-3))
	if err != nil {
		t.Fatal(err)
	}

	l, r := b.ProcessFrame(0.75, -0.3)
	if l != 0.75/8 || r != -0.3/8 {
		t.Fatalf("ProcessFrame() = (%v, %v)", l, r)
	}

	b.SetShift(99)

	if b.Gain() != 1 {
		t.Fatalf("Gain() after out-of-range shift = %v, want 1", b.Gain())
	}

	if _, err := NewBitShiftGain(WithShift(17)); err == nil {
		t.Fatal("expected error for shift 17")
	}
}

func TestDCVoltage(t *testing.T) {
	t.Parallel()

	d, err := NewDCVoltage(WithVoltage(0.05))
	if err != nil {
		t.Fatal(err)
	}

	l, r := d.ProcessFrame(float64(float32(0.2)), float64(float32(-0.1)))
	if float32(l) != 0.25 || float32(r) != -0.05 {
		t.Fatalf("ProcessFrame() = (%v, %v), want (0.25, -0.05)", float32(l), float32(r))
	}

	d.SetVoltage(3)

	if d.Voltage() != 1 {
		t.Fatalf("Voltage() = %v, want 1", d.Voltage())
	}

	if _, err := NewDCVoltage(WithVoltage(-1.5)); err == nil {
		t.Fatal("expected error for voltage -1.5")
	}
}
