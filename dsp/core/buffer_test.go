package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestEnsureLen32Grow(t *testing.T) {
	buf := make([]float32, 2)

	out := EnsureLen32(buf, 5)
	if len(out) != 5 {
		t.Fatalf("len = %d, want 5", len(out))
	}

	if got := EnsureLen32(out, 0); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestWidenNarrow(t *testing.T) {
	wide := make([]float64, 2)

	n := Widen(wide, []float32{0.5, -0.25, 1})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if wide[0] != 0.5 || wide[1] != -0.25 {
		t.Fatalf("unexpected wide: %#v", wide)
	}

	narrow := make([]float32, 3)

	n = Narrow(narrow, []float64{0.1, 0.2})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if narrow[0] != float32(0.1) || narrow[1] != float32(0.2) || narrow[2] != 0 {
		t.Fatalf("unexpected narrow: %#v", narrow)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
