package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	t.Parallel()

	got := MaxAbsDiff([]float32{0, 0.5, 1}, []float32{0, 0.25, 1, 9})
	if got != 0.25 {
		t.Fatalf("MaxAbsDiff() = %v, want 0.25", got)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	t.Parallel()

	a := []float32{0.1, -0.2}
	RequireEqual(t, a, []float32{0.1, -0.2})
	RequireNearlyEqual(t, a, []float32{0.1001, -0.2}, 1e-3)
	RequireFinite(t, a)
}
