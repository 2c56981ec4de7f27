package core

import (
	"fmt"
	"math"
)

const defaultEpsilon = 1e-12

// ReferenceSampleRate is the rate at which sample-rate dependent
// coefficients in the effect catalog are specified.
const ReferenceSampleRate = 44100.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampInt limits value to the inclusive range [lo, hi].
func ClampInt(value, lo, hi int) int {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// CheckSampleRate returns an error naming what if sampleRate is not a
// positive finite number.
func CheckSampleRate(what string, sampleRate float64) error {
	if sampleRate <= 0 || !IsFinite(sampleRate) {
		return fmt.Errorf("%s sample rate must be > 0 and finite: %f", what, sampleRate)
	}

	return nil
}

// SampleRateScale returns sampleRate relative to [ReferenceSampleRate].
func SampleRateScale(sampleRate float64) float64 {
	return sampleRate / ReferenceSampleRate
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
