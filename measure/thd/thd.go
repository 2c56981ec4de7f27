package thd

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
	defaultFFTSize     = 8192
	minFFTSize         = 64
	defaultLowerHz     = 20.0
	defaultUpperHz     = 20000.0
	defaultCaptureBins = 4 // main-lobe half width of the 4-term Blackman-Harris window
)

var errShortSignal = errors.New("thd: signal shorter than FFT size")

// Config holds harmonic distortion analysis parameters.
type Config struct {
	SampleRate float64
	FFTSize    int

	// FundamentalHz selects the fundamental. Zero picks the strongest bin
	// between LowerHz and UpperHz.
	FundamentalHz float64

	// LowerHz and UpperHz bound the band that harmonics and noise are
	// collected from.
	LowerHz float64
	UpperHz float64

	// CaptureBins is the number of bins on each side of a component that
	// are summed into it. Zero uses the window's main-lobe half width.
	CaptureBins int

	// MaxHarmonics limits the harmonics taken into account, zero means
	// every harmonic in band.
	MaxHarmonics int
}

func (c Config) normalize() (Config, error) {
	if c.SampleRate == 0 {
		c.SampleRate = core.ReferenceSampleRate
	}

	err := core.CheckSampleRate("thd", c.SampleRate)
	if err != nil {
		return c, err
	}

	if c.FFTSize == 0 {
		c.FFTSize = defaultFFTSize
	}

	if c.FFTSize < minFFTSize || bits.OnesCount(uint(c.FFTSize)) != 1 {
		return c, fmt.Errorf("thd: FFT size must be a power of two >= %d: %d", minFFTSize, c.FFTSize)
	}

	if c.LowerHz <= 0 {
		c.LowerHz = defaultLowerHz
	}

	if c.UpperHz <= 0 {
		c.UpperHz = defaultUpperHz
	}

	c.UpperHz = max(c.UpperHz, c.LowerHz)

	if c.CaptureBins <= 0 {
		c.CaptureBins = defaultCaptureBins
	}

	c.MaxHarmonics = max(c.MaxHarmonics, 0)

	return c, nil
}

// BinHz returns the width of one bin.
func (c Config) BinHz() float64 { return c.SampleRate / float64(c.FFTSize) }

// Result holds harmonic distortion figures. Ratios are relative to the
// fundamental's amplitude and sum harmonics by root of sum of squares.
type Result struct {
	FundamentalHz float64

	// FundamentalLevel is the fundamental's peak amplitude; a full-scale
	// sine reads 1.
	FundamentalLevel float64

	// Harmonics holds the amplitude ratio of H2, H3, ... in order.
	Harmonics []float64

	THD    float64
	THDN   float64
	OddHD  float64
	EvenHD float64
	Noise  float64

	THDdB  float64
	THDNdB float64
	SINAD  float64
}

// FromPower computes distortion figures from a one-sided power spectrum
// holding bins 0..FFTSize/2. scale converts the summed power of one
// component to squared peak amplitude.
func FromPower(power []float64, scale float64, cfg Config) (Result, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Result{}, err
	}

	maxBin := len(power) - 1
	if maxBin < 2 {
		return Result{}, fmt.Errorf("thd: spectrum too short: %d bins", len(power))
	}

	binHz := cfg.BinHz()
	lower := core.ClampInt(int(math.Round(cfg.LowerHz/binHz)), 1, maxBin)
	upper := core.ClampInt(int(math.Round(cfg.UpperHz/binHz)), lower, maxBin)

	fund := fundamentalBin(power, lower, upper, binHz, cfg.FundamentalHz)

	capture := min(cfg.CaptureBins, max(fund/2, 0))
	component := func(bin int) float64 {
		lo := max(bin-capture, 0)
		hi := min(bin+capture, maxBin)

		return vecmath.Sum(power[lo:hi+1]) * scale
	}

	res := Result{FundamentalHz: float64(fund) * binHz}

	fundPower := component(fund)
	if fundPower <= 0 {
		return res, nil
	}

	res.FundamentalLevel = math.Sqrt(fundPower)

	var harmPower, oddPower, evenPower float64

	for k := 2; cfg.MaxHarmonics == 0 || k-1 <= cfg.MaxHarmonics; k++ {
		bin := k * fund
		if bin > upper {
			break
		}

		if bin < lower {
			continue
		}

		p := component(bin)
		harmPower += p

		if k%2 == 0 {
			evenPower += p
		} else {
			oddPower += p
		}

		res.Harmonics = append(res.Harmonics, math.Sqrt(p/fundPower))
	}

	totalPower := vecmath.Sum(power[lower:upper+1]) * scale
	residualPower := max(totalPower-fundPower, 0)
	noisePower := max(residualPower-harmPower, 0)

	res.THD = math.Sqrt(harmPower / fundPower)
	res.THDN = math.Sqrt(residualPower / fundPower)
	res.OddHD = math.Sqrt(oddPower / fundPower)
	res.EvenHD = math.Sqrt(evenPower / fundPower)
	res.Noise = math.Sqrt(noisePower / fundPower)

	res.THDdB = core.LinearToDB(res.THD)
	res.THDNdB = core.LinearToDB(res.THDN)
	res.SINAD = -res.THDNdB

	return res, nil
}

// AnalyzeSignal windows the last cfg.FFTSize samples of signal with a
// 4-term Blackman-Harris window and computes distortion figures.
func AnalyzeSignal(signal []float64, cfg Config) (Result, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Result{}, err
	}

	n := cfg.FFTSize
	if len(signal) < n {
		return Result{}, fmt.Errorf("%w: %d < %d", errShortSignal, len(signal), n)
	}

	frame := signal[len(signal)-n:]
	win := blackmanHarris(n)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Result{}, fmt.Errorf("thd: create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, x := range frame {
		in[i] = complex(x*win[i], 0)
	}

	out := make([]complex128, n)

	err = plan.Forward(out, in)
	if err != nil {
		return Result{}, fmt.Errorf("thd: forward FFT: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	// A sine of peak amplitude A puts (A/2)^2 * n * sum(w^2) into its
	// positive-frequency lobe.
	scale := 4 / (float64(n) * vecmath.DotProduct(win, win))

	return FromPower(power, scale, cfg)
}

func fundamentalBin(power []float64, lower, upper int, binHz, hz float64) int {
	if hz > 0 {
		return core.ClampInt(int(math.Round(hz/binHz)), lower, upper)
	}

	best := lower
	for i := lower + 1; i <= upper; i++ {
		if power[i] > power[best] {
			best = i
		}
	}

	return best
}

// blackmanHarris returns a periodic 4-term Blackman-Harris window.
func blackmanHarris(n int) []float64 {
	const (
		a0 = 0.35875
		a1 = 0.48829
		a2 = 0.14128
		a3 = 0.01168
	)

	w := make([]float64, n)
	step := 2 * math.Pi / float64(n)

	for i := range w {
		x := step * float64(i)
		w[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x) - a3*math.Cos(3*x)
	}

	return w
}
