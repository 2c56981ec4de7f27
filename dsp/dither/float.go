package dither

import "math"

const (
	// centre is subtracted from the generator state to make the draw bipolar.
	centre = 0x7fffffff

	// floatScale maps a centred 32-bit draw to a value just below the
	// single-precision LSB once multiplied by 2^(exponent+62).
	floatScale = 5.5e-36

	exponentBias = 62
)

// State is the xorshift32 generator of one channel. The zero value is not
// usable; seed it with [Seed] or [SeedPair].
type State uint32

// Step runs one xorshift32 recurrence (13, 17, 5) with wraparound.
func Step(x uint32) uint32 {
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	return x
}

// Advance steps seed and returns the new seed together with the dither
// offset for sample. The offset is scaled to the binary exponent of sample
// after rounding it to single precision, so the noise tracks the magnitude
// of the signal it is added to.
func Advance(seed uint32, sample float64) (uint32, float64) {
	_, exp := math.Frexp(float64(float32(sample)))
	seed = Step(seed)
	return seed, (float64(seed) - centre) * floatScale * math.Ldexp(1, exp+exponentBias)
}

// Envelope returns the largest magnitude [Advance] can produce for sample.
func Envelope(sample float64) float64 {
	_, exp := math.Frexp(float64(float32(sample)))
	return (centre + 1) * floatScale * math.Ldexp(1, exp+exponentBias)
}

// Seed returns the current generator value.
func (s State) Seed() uint32 { return uint32(s) }

// Offset advances the generator and returns the dither offset for sample.
func (s *State) Offset(sample float64) float64 {
	next, offset := Advance(uint32(*s), sample)
	*s = State(next)
	return offset
}

// Apply returns sample with its dither offset added.
func (s *State) Apply(sample float64) float64 {
	return sample + s.Offset(sample)
}
