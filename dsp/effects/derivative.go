package effects

import "math"

// Derivative outputs the first difference of each channel scaled by ln 10,
// hard-clipped to ±1.
type Derivative struct {
	prevL float64
	prevR float64
}

// NewDerivative returns a derivative stage with zeroed history.
func NewDerivative() *Derivative { return &Derivative{} }

// Reset clears the previous-sample history.
func (d *Derivative) Reset() {
	d.prevL = 0
	d.prevR = 0
}

func (d *Derivative) ProcessFrame(left, right float64) (float64, float64) {
	outL := slope(left, d.prevL)
	outR := slope(right, d.prevR)
	d.prevL = left
	d.prevR = right

	return outL, outR
}

func slope(x, prev float64) float64 {
	y := (x - prev) * math.Ln10
	if y > 1 {
		return 1
	}

	if y < -1 {
		return -1
	}

	return y
}
