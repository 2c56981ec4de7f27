package dither

import (
	"math"
	"math/rand/v2"
)

// MinSeed is the smallest acceptable generator seed. Smaller seeds leave
// the xorshift sequence in a near-silent region for many samples.
const MinSeed = 16386

// maxRerolls bounds the reseeding loop for degenerate sources.
const maxRerolls = 64

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG source seeded from the runtime's entropy.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSource returns a reproducible PCG source.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Seed draws a generator seed of at least [MinSeed] from src.
//
// Draws are scaled to the full 32-bit range and rerolled while they fall
// below the floor. A source that keeps producing tiny values is lifted
// above the floor deterministically after a bounded number of attempts.
func Seed(src Source) uint32 {
	seed := uint32(1)
	for i := 0; seed < MinSeed && i < maxRerolls; i++ {
		seed = draw(src)
	}

	if seed < MinSeed {
		seed += MinSeed
	}

	return seed
}

// SeedPair draws distinct seeds for the left and right channel.
func SeedPair(src Source) (State, State) {
	left := Seed(src)
	right := Seed(src)

	if right == left {
		right = Seed(src)
	}

	if right == left {
		// Flipping bit 0 of a seed >= MinSeed stays >= MinSeed.
		right = left ^ 1
	}

	return State(left), State(right)
}

func draw(src Source) uint32 {
	f := src.Float64()
	if !(f > 0) {
		return 0
	}

	if f > 1 {
		f = 1
	}

	return uint32(f * math.MaxUint32)
}
