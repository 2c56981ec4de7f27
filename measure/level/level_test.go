package level

import (
	"math"
	"testing"
)

func TestMeasureSine(t *testing.T) {
	t.Parallel()

	const n = 4800

	left := make([]float64, n)
	right := make([]float64, n)

	for i := range left {
		left[i] = 0.5 * math.Sin(2*math.Pi*100*float64(i)/48000)
		right[i] = -left[i] + 0.1
	}

	r := Measure(left, right)

	if r.Frames != n {
		t.Fatalf("Frames = %d, want %d", r.Frames, n)
	}

	if math.Abs(r.Left.Peak-0.5) > 1e-9 {
		t.Errorf("Left.Peak = %v, want 0.5", r.Left.Peak)
	}

	if math.Abs(r.Left.RMS-0.5/math.Sqrt2) > 1e-6 {
		t.Errorf("Left.RMS = %v, want %v", r.Left.RMS, 0.5/math.Sqrt2)
	}

	if math.Abs(r.Left.PeakDB-(-6.0206)) > 1e-3 {
		t.Errorf("Left.PeakDB = %v, want -6.02", r.Left.PeakDB)
	}

	if math.Abs(r.Left.DC) > 1e-9 || math.Abs(r.Right.DC-0.1) > 1e-9 {
		t.Errorf("DC = %v / %v, want 0 / 0.1", r.Left.DC, r.Right.DC)
	}

	if r.Correlation >= -0.9 {
		t.Errorf("Correlation = %v, want strongly negative", r.Correlation)
	}
}

func TestMeterMatchesOneShot(t *testing.T) {
	t.Parallel()

	left := make([]float64, 1000)
	right := make([]float64, 1000)

	for i := range left {
		left[i] = math.Sin(float64(i) * 0.01)
		right[i] = 0.3 * math.Cos(float64(i)*0.02)
	}

	want := Measure(left, right)

	var m Meter
	for off := 0; off < len(left); off += 128 {
		end := min(off+128, len(left))
		m.Add(left[off:end], right[off:end])
	}

	got := m.Report()

	if got.Frames != want.Frames || got.Left.Peak != want.Left.Peak || got.Right.Peak != want.Right.Peak {
		t.Fatalf("Report() = %+v, want %+v", got, want)
	}

	if math.Abs(got.Left.RMS-want.Left.RMS) > 1e-12 || math.Abs(got.Correlation-want.Correlation) > 1e-12 {
		t.Fatalf("Report() = %+v, want %+v", got, want)
	}

	m.Reset()

	if r := m.Report(); r.Frames != 0 || !math.IsInf(r.Left.PeakDB, -1) {
		t.Fatalf("after Reset = %+v", r)
	}
}

func TestAdd32(t *testing.T) {
	t.Parallel()

	var m Meter
	m.Add32([]float32{0.25, -0.75}, []float32{0.5, 0.5, 9})

	r := m.Report()
	if r.Frames != 2 || r.Left.Peak != 0.75 || r.Right.Peak != 0.5 {
		t.Fatalf("Report() = %+v", r)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	x := []float64{0.1, -0.25, 0.2}

	gain := Normalize(x, 0)
	if gain != 4 || x[1] != -1 || x[0] != 0.4 {
		t.Fatalf("Normalize() gain=%v x=%v", gain, x)
	}

	silent := []float64{0, 0}
	if g := Normalize(silent, -3); g != 1 {
		t.Fatalf("Normalize(silence) = %v, want 1", g)
	}
}
