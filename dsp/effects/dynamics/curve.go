package dynamics

import "math"

const (
	// MinTrackerGain is the floor of the tracked gain for both variants.
	MinTrackerGain = 0.0078125

	// CurveCeiling and RecurveCeiling are the variant gain ceilings.
	CurveCeiling   = 1.0
	RecurveCeiling = 2.0

	trackerInputScale  = 0.5
	trackerOutputScale = 2.0
	trackerDrive       = 4.0
)

// tracker is the gain state shared by Curve and Recurve.
type tracker struct {
	gain    float64
	ceiling float64
}

func (t *tracker) reset() { t.gain = 1 }

// step scales both channels by the current gain, then feeds each back into
// the gain, left first. Loud samples land sin() in its negative half and
// pull the gain down quickly, quiet ones let it creep back up. The gain is
// clamped once per frame.
func (t *tracker) step(left, right float64) (float64, float64) {
	left *= trackerInputScale
	right *= trackerInputScale
	left *= t.gain
	right *= t.gain

	t.gain += feedback(left)
	t.gain += feedback(right)

	if t.gain > t.ceiling {
		t.gain = t.ceiling
	}

	if t.gain < MinTrackerGain {
		t.gain = MinTrackerGain
	}

	return left * trackerOutputScale, right * trackerOutputScale
}

func feedback(x float64) float64 {
	drive := math.Min(math.Abs(x*trackerDrive), trackerDrive)
	x2 := x * x

	return math.Sin(drive) * x2 * x2
}

// Curve is a program-dependent compressor whose gain never exceeds unity.
type Curve struct {
	tracker
}

// NewCurve returns a Curve with its gain at 1.
func NewCurve() *Curve {
	return &Curve{tracker{gain: 1, ceiling: CurveCeiling}}
}

// Reset restores the gain to 1.
func (c *Curve) Reset() { c.reset() }

// Gain returns the tracked gain.
func (c *Curve) Gain() float64 { return c.gain }

func (c *Curve) ProcessFrame(left, right float64) (float64, float64) {
	return c.step(left, right)
}

// Recurve is Curve with the gain allowed to rise to 2 and the output hard
// clipped to ±1.
type Recurve struct {
	tracker
}

// NewRecurve returns a Recurve with its gain at 1.
func NewRecurve() *Recurve {
	return &Recurve{tracker{gain: 1, ceiling: RecurveCeiling}}
}

// Reset restores the gain to 1.
func (r *Recurve) Reset() { r.reset() }

// Gain returns the tracked gain.
func (r *Recurve) Gain() float64 { return r.gain }

func (r *Recurve) ProcessFrame(left, right float64) (float64, float64) {
	left, right = r.step(left, right)

	return hardClip(left), hardClip(right)
}

func hardClip(x float64) float64 {
	if x > 1 {
		return 1
	}

	if x < -1 {
		return -1
	}

	return x
}
