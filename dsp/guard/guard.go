// Package guard keeps near-zero samples out of the denormal range before
// they enter double-precision accumulation.
//
// A sample whose magnitude is below [Threshold] is replaced by a tiny,
// non-zero value derived from the channel's current dither seed. The
// replacement is far below audibility but large enough that subsequent
// arithmetic stays on the normal floating-point fast path.
package guard

import "math"

const (
	// Threshold is the smallest magnitude passed through unchanged.
	Threshold = 1.18e-23

	// Scale multiplies the dither seed to form the substitute value.
	Scale = 1.18e-17
)

// Apply returns x unchanged when |x| >= [Threshold], otherwise
// seed * [Scale].
func Apply(x float64, seed uint32) float64 {
	if math.Abs(x) < Threshold {
		return float64(seed) * Scale
	}

	return x
}

// Stereo applies [Apply] to a frame using an independent seed per channel.
func Stereo(left, right float64, seedL, seedR uint32) (float64, float64) {
	return Apply(left, seedL), Apply(right, seedR)
}
