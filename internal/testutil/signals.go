package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine generates a deterministic single-precision sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float32 {
	out := make([]float32, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out
}

// StereoSine generates a sine pair with independent frequencies so that
// channel mix-ups show up in tests.
func StereoSine(freqL, freqR, sampleRate, amplitude float64, length int) (left, right []float32) {
	return Sine(freqL, sampleRate, amplitude, length), Sine(freqR, sampleRate, amplitude, length)
}

// Noise generates uniform white noise in [-amplitude, amplitude) from a
// fixed seed.
func Noise(seed uint64, amplitude float64, length int) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]float32, length)

	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amplitude)
	}

	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float32 {
	out := make([]float32, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC generates a constant-valued signal.
func DC(value float32, length int) []float32 {
	out := make([]float32, length)
	for i := range out {
		out[i] = value
	}

	return out
}
