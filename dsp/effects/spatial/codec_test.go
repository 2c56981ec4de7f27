package spatial

import (
	"math"
	"testing"
)

func TestMidSideRoundTripAtEqualBalance(t *testing.T) {
	t.Parallel()

	enc, err := NewMidSideEncoder()
	if err != nil {
		t.Fatal(err)
	}

	dec, err := NewMidSideDecoder()
	if err != nil {
		t.Fatal(err)
	}

	for i := range 256 {
		l := math.Sin(float64(i) * 0.1)
		r := 0.6 * math.Cos(float64(i)*0.23)

		m, s := enc.ProcessFrame(l, r)
		gotL, gotR := dec.ProcessFrame(m, s)

		if math.Abs(gotL-l) > 1e-15 || math.Abs(gotR-r) > 1e-15 {
			t.Fatalf("frame %d: (%v, %v), want (%v, %v)", i, gotL, gotR, l, r)
		}
	}
}

func TestMidSideBalanceExtremes(t *testing.T) {
	t.Parallel()

	enc, err := NewMidSideEncoder(WithBalance(0))
	if err != nil {
		t.Fatal(err)
	}

	m, s := enc.ProcessFrame(0.25, 0.5)
	if m != 1.5 || s != 0 {
		t.Fatalf("balance 0: (%v, %v), want (1.5, 0)", m, s)
	}

	enc.SetBalance(1)

	m, s = enc.ProcessFrame(0.25, 0.5)
	if m != 0 || s != -0.5 {
		t.Fatalf("balance 1: (%v, %v), want (0, -0.5)", m, s)
	}

	enc.SetBalance(7)

	if enc.Balance() != 1 {
		t.Fatalf("Balance() = %v, want 1", enc.Balance())
	}

	if _, err := NewMidSideDecoder(WithBalance(1.1)); err == nil {
		t.Fatal("expected error for balance 1.1")
	}
}

func TestSidepassZeroCutoffIsTransparent(t *testing.T) {
	t.Parallel()

	s, err := NewSidepass(48000)
	if err != nil {
		t.Fatal(err)
	}

	l, r := s.ProcessFrame(0.5, -0.25)
	if l != 0.5 || r != -0.25 {
		t.Fatalf("ProcessFrame() = (%v, %v), want identity", l, r)
	}
}

func TestSidepassRemovesStaticSide(t *testing.T) {
	t.Parallel()

	s, err := NewSidepass(44100, WithCutoff(0.5))
	if err != nil {
		t.Fatal(err)
	}

	if want := 0.125; s.Coefficient() != want {
		t.Fatalf("Coefficient() = %v, want %v", s.Coefficient(), want)
	}

	var l, r float64
	for range 2000 {
		l, r = s.ProcessFrame(0.7, 0.1)
	}

	// DC side content decays; DC mid passes.
	if math.Abs(l-0.4) > 1e-9 || math.Abs(r-0.4) > 1e-9 {
		t.Fatalf("steady state = (%v, %v), want (0.4, 0.4)", l, r)
	}
}

func TestSidepassAlternatesIntegrators(t *testing.T) {
	t.Parallel()

	s, err := NewSidepass(44100, WithCutoff(1))
	if err != nil {
		t.Fatal(err)
	}

	// With k = 1 an integrator cancels side completely on the frame it
	// runs, leaving only mid.
	l, r := s.ProcessFrame(1, 0)
	if l != 0.5 || r != 0.5 {
		t.Fatalf("frame 1 = (%v, %v), want (0.5, 0.5)", l, r)
	}

	l, r = s.ProcessFrame(0, 0)

	if l != 0 || r != 0 {
		t.Fatalf("frame 2 = (%v, %v), want (0, 0)", l, r)
	}

	l, r = s.ProcessFrame(0, 0)
	if l != 0 || r != 0 {
		t.Fatalf("frame 3 = (%v, %v), want (0, 0)", l, r)
	}

	half, err := NewSidepass(88200, WithCutoff(1))
	if err != nil {
		t.Fatal(err)
	}

	if half.Coefficient() != 0.5 {
		t.Fatalf("Coefficient() at 88.2 kHz = %v, want 0.5", half.Coefficient())
	}

	// Frame 1 uses B: iirB = 0.5, side = 0.5. Frame 2 uses A (still 0)
	// for a zero input. Frame 3 uses B again: iirB = 0.25, side = -0.25.
	half.ProcessFrame(0.5, -0.5)
	half.ProcessFrame(0, 0)
	l, r = half.ProcessFrame(0, 0)

	if l != -0.125 || r != 0.125 {
		t.Fatalf("frame 3 = (%v, %v), want (-0.125, 0.125)", l, r)
	}
}

func TestSidepassAlternationRestartsOnReset(t *testing.T) {
	t.Parallel()

	// cutoff 0.5 at 44.1 kHz gives k = 0.125.
	s, err := NewSidepass(44100, WithCutoff(0.5))
	if err != nil {
		t.Fatal(err)
	}

	frames := [][4]float64{
		{0.5, -0.5, 0.4375, -0.4375},
		{0, 0, 0, 0},
		{0, 0, -0.0546875, 0.0546875},
	}

	for pass := range 2 {
		for i, f := range frames {
			l, r := s.ProcessFrame(f[0], f[1])
			if l != f[2] || r != f[3] {
				t.Fatalf("pass %d frame %d = (%v, %v), want (%v, %v)", pass, i, l, r, f[2], f[3])
			}
		}

		s.Reset()
	}
}

func TestSidepassRejectsBadSampleRate(t *testing.T) {
	t.Parallel()

	if _, err := NewSidepass(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewSidepass(44100, WithCutoff(-0.1)); err == nil {
		t.Fatal("expected error for negative cutoff")
	}
}
