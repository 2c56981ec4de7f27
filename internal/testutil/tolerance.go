package testutil

import (
	"math"
	"testing"
)

// RequireEqual fails t unless got and want are bit-identical.
func RequireEqual(t *testing.T, got, want []float32) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if math.Float32bits(got[i]) != math.Float32bits(want[i]) {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

// RequireNearlyEqual fails t if any element pair differs by more than eps.
func RequireNearlyEqual(t *testing.T, got, want []float32, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(float64(got[i]) - float64(want[i])); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float32) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference over the common
// length of a and b.
func MaxAbsDiff(a, b []float32) float64 {
	n := min(len(a), len(b))

	var maxDiff float64
	for i := range n {
		maxDiff = max(maxDiff, math.Abs(float64(a[i])-float64(b[i])))
	}

	return maxDiff
}
