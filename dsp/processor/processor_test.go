package processor

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/dsp/guard"
)

type identity struct{ resets int }

func (k *identity) Reset() { k.resets++ }
func (k *identity) ProcessFrame(l, r float64) (float64, float64) { return l, r }

type gained struct {
	identity
	gain  float64
	calls int
}

func (k *gained) PreGain() float64 {
	k.calls++
	return k.gain
}

// counter outputs the number of frames seen so far on both channels.
type counter struct{ n float64 }

func (k *counter) Reset() { k.n = 0 }

func (k *counter) ProcessFrame(_, _ float64) (float64, float64) {
	k.n++
	return k.n, -k.n
}

func newProcessor(t *testing.T, k Kernel, mode Mode) *Processor {
	t.Helper()

	p, err := New(k, WithMode(mode))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p.Activate(dither.NewSeededSource(1))

	return p
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil kernel")
	}

	if _, err := New(&identity{}, WithMode(Mode(9))); err == nil {
		t.Fatal("expected error for invalid mode")
	}

	p, err := New(&identity{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if p.Mode() != ModeDither {
		t.Fatalf("Mode() = %v, want dither", p.Mode())
	}
}

func TestRawModeIsExact(t *testing.T) {
	t.Parallel()

	p := newProcessor(t, &identity{}, ModeRaw)

	in := []float32{0.5, -0.3, 0, 1e-30, 1}
	outL := make([]float32, len(in))
	outR := make([]float32, len(in))

	p.Process(in, in, outL, outR, len(in))

	for i := range in {
		if outL[i] != in[i] || outR[i] != in[i] {
			t.Fatalf("frame %d: (%v, %v), want %v", i, outL[i], outR[i], in[i])
		}
	}
}

func TestDitherModeMatchesManualPipeline(t *testing.T) {
	t.Parallel()

	p := newProcessor(t, &identity{}, ModeDither)
	seedL, seedR := p.Seeds()
	left, right := dither.State(seedL), dither.State(seedR)

	inL := []float32{0.5, -0.25, 0, 0.125, 0.9}
	inR := []float32{-0.1, 0, 0.7, 0.3, -0.9}
	outL := make([]float32, len(inL))
	outR := make([]float32, len(inR))

	p.Process(inL, inR, outL, outR, len(inL))

	for i := range inL {
		l := guard.Apply(float64(inL[i]), left.Seed())
		r := guard.Apply(float64(inR[i]), right.Seed())
		wantL := float32(left.Apply(l))
		wantR := float32(right.Apply(r))

		if outL[i] != wantL || outR[i] != wantR {
			t.Fatalf("frame %d: (%v, %v), want (%v, %v)", i, outL[i], outR[i], wantL, wantR)
		}
	}
}

func TestDitherStaysWithinOneULP(t *testing.T) {
	t.Parallel()

	p := newProcessor(t, &identity{}, ModeDither)

	const n = 4096

	in := make([]float32, n)
	for i := range in {
		in[i] = float32(0.8 * math.Sin(float64(i)*0.01))
	}

	outL := make([]float32, n)
	outR := make([]float32, n)
	p.Process(in, in, outL, outR, n)

	for i := range in {
		if in[i] == 0 {
			continue
		}

		ulp := math.Abs(float64(math.Nextafter32(in[i], 2)) - float64(in[i]))
		ulp = math.Max(ulp, math.Abs(float64(math.Nextafter32(in[i], -2))-float64(in[i])))

		if d := math.Abs(float64(outL[i]) - float64(in[i])); d > ulp {
			t.Fatalf("frame %d: moved by %g, more than one ulp %g", i, d, ulp)
		}
	}
}

func TestGuardSubstitutesSilence(t *testing.T) {
	t.Parallel()

	p := newProcessor(t, &identity{}, ModeGuard)
	seedL, seedR := p.Seeds()

	in := make([]float32, 8)
	outL := make([]float32, 8)
	outR := make([]float32, 8)
	p.Process(in, in, outL, outR, 8)

	for i := range in {
		if outL[i] != float32(float64(seedL)*guard.Scale) || outR[i] != float32(float64(seedR)*guard.Scale) {
			t.Fatalf("frame %d: (%g, %g)", i, outL[i], outR[i])
		}
	}
}

func TestSeedsAreIndependent(t *testing.T) {
	t.Parallel()

	p := newProcessor(t, &identity{}, ModeDither)

	l, r := p.Seeds()
	if l == r {
		t.Fatalf("left and right seeds are equal: %d", l)
	}

	if l < dither.MinSeed || r < dither.MinSeed {
		t.Fatalf("seeds below floor: %d, %d", l, r)
	}
}

func TestDeterministicAcrossInstances(t *testing.T) {
	t.Parallel()

	a := newProcessor(t, &identity{}, ModeDither)
	b := newProcessor(t, &identity{}, ModeDither)

	in := []float32{0.1, 0.2, 0.3, 0.4}
	outA := make([]float32, 4)
	outB := make([]float32, 4)

	a.Process(in, in, outA, outA, 4)
	b.Process(in, in, outB, outB, 4)

	for i := range outA {
		if outA[i] != outB[i] {
			t.Fatalf("frame %d: %v != %v", i, outA[i], outB[i])
		}
	}
}

func TestPreGainReadOncePerBlock(t *testing.T) {
	t.Parallel()

	k := &gained{gain: 2}
	p := newProcessor(t, k, ModeRaw)

	in := []float32{0.25, 0.5, -0.125}
	out := make([]float32, 3)

	p.Process(in, in, out, out, 3)

	if k.calls != 1 {
		t.Fatalf("PreGain called %d times, want 1", k.calls)
	}

	for i := range in {
		if out[i] != 2*in[i] {
			t.Fatalf("frame %d: %v, want %v", i, out[i], 2*in[i])
		}
	}
}

func TestStateCarriesAcrossBlocksAndResetsOnActivate(t *testing.T) {
	t.Parallel()

	k := &counter{}
	p := newProcessor(t, k, ModeRaw)

	in := make([]float32, 3)
	outL := make([]float32, 3)
	outR := make([]float32, 3)

	p.Process(in, in, outL, outR, 3)
	p.Process(in, in, outL, outR, 3)

	if outL[0] != 4 || outL[2] != 6 || outR[2] != -6 {
		t.Fatalf("second block = %v / %v, want 4..6", outL, outR)
	}

	p.Activate(dither.NewSeededSource(2))
	p.Process(in, in, outL, outR, 1)

	if outL[0] != 1 {
		t.Fatalf("after Activate first frame = %v, want 1", outL[0])
	}
}

func TestFramesClampedToBuffers(t *testing.T) {
	t.Parallel()

	k := &counter{}
	p := newProcessor(t, k, ModeDither)

	in := make([]float32, 4)
	outL := make([]float32, 2)
	outR := make([]float32, 4)

	p.Process(in, in, outL, outR, 100)

	if k.n != 2 {
		t.Fatalf("processed %v frames, want 2", k.n)
	}

	p.Process(in, in, outL, outR, -5)

	if k.n != 2 {
		t.Fatalf("negative frame count processed frames")
	}
}

func TestActivateResetsKernel(t *testing.T) {
	t.Parallel()

	k := &identity{}
	p := newProcessor(t, k, ModeDither)

	if k.resets != 1 {
		t.Fatalf("resets = %d, want 1", k.resets)
	}

	p.Activate(dither.NewSeededSource(9))

	if k.resets != 2 {
		t.Fatalf("resets = %d, want 2", k.resets)
	}
}

func TestModeString(t *testing.T) {
	t.Parallel()

	if ModeGuard.String() != "guard" || Mode(-1).String() != "invalid" {
		t.Fatalf("unexpected names %q %q", ModeGuard.String(), Mode(-1).String())
	}

	if !ModeDither.Guards() || !ModeDither.Dithers() || ModeGuard.Dithers() || ModeRaw.Guards() {
		t.Fatal("unexpected stage flags")
	}
}
