package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// Channel holds the measurements of one channel. Levels are linear; the
// dB fields are relative to full scale (1.0).
type Channel struct {
	Peak   float64
	RMS    float64
	DC     float64
	PeakDB float64
	RMSDB  float64
}

// Report holds the measurements of a stereo signal.
type Report struct {
	Frames      int
	Left        Channel
	Right       Channel
	Correlation float64
}

// Meter accumulates levels over consecutive blocks. The zero value is
// ready to use.
type Meter struct {
	frames int

	peakL, peakR float64
	sumL, sumR   float64
	sqL, sqR     float64
	cross        float64
	scratchL     []float64
	scratchR     []float64
}

// Add accumulates one stereo block. Extra samples of the longer channel
// are ignored.
func (m *Meter) Add(left, right []float64) {
	n := min(len(left), len(right))
	if n == 0 {
		return
	}

	left, right = left[:n], right[:n]

	m.peakL = max(m.peakL, vecmath.MaxAbs(left))
	m.peakR = max(m.peakR, vecmath.MaxAbs(right))
	m.sumL += vecmath.Sum(left)
	m.sumR += vecmath.Sum(right)
	m.sqL += vecmath.DotProduct(left, left)
	m.sqR += vecmath.DotProduct(right, right)
	m.cross += vecmath.DotProduct(left, right)
	m.frames += n
}

// Add32 accumulates a single-precision stereo block.
func (m *Meter) Add32(left, right []float32) {
	n := min(len(left), len(right))
	m.scratchL = core.EnsureLen(m.scratchL, n)
	m.scratchR = core.EnsureLen(m.scratchR, n)
	core.Widen(m.scratchL, left[:n])
	core.Widen(m.scratchR, right[:n])
	m.Add(m.scratchL, m.scratchR)
}

// Reset clears the accumulated state.
func (m *Meter) Reset() {
	*m = Meter{scratchL: m.scratchL[:0], scratchR: m.scratchR[:0]}
}

// Report returns the measurements so far.
func (m *Meter) Report() Report {
	r := Report{Frames: m.frames}
	if m.frames == 0 {
		r.Left = channel(0, 0, 0)
		r.Right = channel(0, 0, 0)

		return r
	}

	n := float64(m.frames)
	r.Left = channel(m.peakL, math.Sqrt(m.sqL/n), m.sumL/n)
	r.Right = channel(m.peakR, math.Sqrt(m.sqR/n), m.sumR/n)

	if den := math.Sqrt(m.sqL * m.sqR); den > 0 {
		r.Correlation = m.cross / den
	}

	return r
}

// Measure is a one-shot stereo measurement.
func Measure(left, right []float64) Report {
	var m Meter
	m.Add(left, right)

	return m.Report()
}

// Normalize scales x in place so that its peak sits at targetDB and
// returns the applied linear gain. Silent input is left unchanged and
// reports a gain of 1.
func Normalize(x []float64, targetDB float64) float64 {
	if len(x) == 0 {
		return 1
	}

	peak := vecmath.MaxAbs(x)
	if peak == 0 {
		return 1
	}

	gain := core.DBToLinear(targetDB) / peak
	vecmath.ScaleBlockInPlace(x, gain)

	return gain
}

func channel(peak, rms, dc float64) Channel {
	return Channel{
		Peak:   peak,
		RMS:    rms,
		DC:     dc,
		PeakDB: core.LinearToDB(peak),
		RMSDB:  core.LinearToDB(rms),
	}
}
