package noise

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fx/dsp/core"
)

const (
	defaultFFTSize = 8192
	minFFTSize     = 64
)

var errShortSignal = errors.New("noise: signal shorter than FFT size")

// Config holds spectrum analysis parameters.
type Config struct {
	SampleRate float64
	FFTSize    int
}

func (c Config) normalize() (Config, error) {
	if c.SampleRate == 0 {
		c.SampleRate = core.ReferenceSampleRate
	}

	err := core.CheckSampleRate("noise", c.SampleRate)
	if err != nil {
		return c, err
	}

	if c.FFTSize == 0 {
		c.FFTSize = defaultFFTSize
	}

	if c.FFTSize < minFFTSize || bits.OnesCount(uint(c.FFTSize)) != 1 {
		return c, fmt.Errorf("noise: FFT size must be a power of two >= %d: %d", minFFTSize, c.FFTSize)
	}

	return c, nil
}

// Spectrum is the averaged one-sided power spectrum of a residual.
type Spectrum struct {
	SampleRate float64
	FFTSize    int

	// PowerDB holds bins 0..FFTSize/2 in dB relative to a full-scale sine.
	PowerDB []float64

	// FloorDB is the mean power per bin over all bins except DC, in dB.
	FloorDB float64

	// PeakDB and PeakHz locate the strongest non-DC bin.
	PeakDB float64
	PeakHz float64

	// Flatness is the ratio of geometric to arithmetic mean power, in
	// [0, 1]; white noise is close to 1, tones are close to 0.
	Flatness float64

	// RMSDB is the residual level in the time domain, in dBFS.
	RMSDB float64
}

// BinHz returns the width of one bin.
func (s Spectrum) BinHz() float64 { return s.SampleRate / float64(s.FFTSize) }

// ResidualSpectrum analyzes residual with Hann-windowed, non-overlapping
// frames of cfg.FFTSize samples and averages their power.
func ResidualSpectrum(residual []float64, cfg Config) (Spectrum, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Spectrum{}, err
	}

	n := cfg.FFTSize
	frames := len(residual) / n

	if frames == 0 {
		return Spectrum{}, fmt.Errorf("%w: %d < %d", errShortSignal, len(residual), n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Spectrum{}, fmt.Errorf("noise: create FFT plan: %w", err)
	}

	win := hann(n)

	// Scale so a full-scale sine reads 0 dB in its bin.
	coherentGain := vecmath.Sum(win) / 2
	norm := 1 / (coherentGain * coherentGain * float64(frames))

	bins := n/2 + 1
	in := make([]complex128, n)
	out := make([]complex128, n)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)
	acc := make([]float64, bins)

	for f := range frames {
		frame := residual[f*n : (f+1)*n]
		for i, x := range frame {
			in[i] = complex(x*win[i], 0)
		}

		err := plan.Forward(out, in)
		if err != nil {
			return Spectrum{}, fmt.Errorf("noise: forward FFT: %w", err)
		}

		for k := range bins {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		vecmath.Power(pow, re, im)
		vecmath.AddBlockInPlace(acc, pow)
	}

	vecmath.ScaleBlockInPlace(acc, norm)

	s := Spectrum{
		SampleRate: cfg.SampleRate,
		FFTSize:    n,
		PowerDB:    make([]float64, bins),
		PeakDB:     math.Inf(-1),
	}

	var sum, logSum float64

	for k, p := range acc {
		s.PowerDB[k] = core.LinearPowerToDB(p)
		if k == 0 {
			continue
		}

		sum += p
		logSum += math.Log(math.Max(p, math.SmallestNonzeroFloat64))

		if s.PowerDB[k] > s.PeakDB {
			s.PeakDB = s.PowerDB[k]
			s.PeakHz = float64(k) * s.BinHz()
		}
	}

	count := float64(bins - 1)
	mean := sum / count
	s.FloorDB = core.LinearPowerToDB(mean)

	if mean > 0 {
		s.Flatness = math.Exp(logSum/count) / mean
	}

	used := residual[:frames*n]
	s.RMSDB = core.LinearPowerToDB(vecmath.DotProduct(used, used) / float64(len(used)))

	return s, nil
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	den := float64(n - 1)

	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/den)
	}

	return w
}
