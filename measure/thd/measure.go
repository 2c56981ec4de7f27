package thd

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-fx/host"
)

const defaultToneHz = 1000.0

// Report holds the distortion of both channels of a rack's output.
type Report struct {
	ToneHz    float64
	Amplitude float64
	Left      Result
	Right     Result
}

// Measure drives rack with a sine of the given peak amplitude and analyzes
// both output channels. The tone frequency is cfg.FundamentalHz (1 kHz if
// zero) snapped to the nearest bin centre. Two frames of cfg.FFTSize are
// rendered and the second is analyzed, so short transients have settled.
// The rack must be active; its sample rate overrides cfg.SampleRate.
func Measure(rack *host.Rack, amplitude float64, cfg Config) (Report, error) {
	if rack == nil {
		return Report{}, errors.New("thd: nil rack")
	}

	cfg.SampleRate = rack.SampleRate()
	if cfg.FundamentalHz <= 0 {
		cfg.FundamentalHz = defaultToneHz
	}

	cfg, err := cfg.normalize()
	if err != nil {
		return Report{}, err
	}

	bin := max(1, math.Round(cfg.FundamentalHz/cfg.BinHz()))
	cfg.FundamentalHz = bin * cfg.BinHz()

	n := 2 * cfg.FFTSize
	left := make([]float64, n)
	right := make([]float64, n)
	step := 2 * math.Pi * bin / float64(cfg.FFTSize)

	for i := range left {
		left[i] = amplitude * math.Sin(step*float64(i))
		right[i] = left[i]
	}

	rack.ProcessPlanar(left, right)

	rep := Report{ToneHz: cfg.FundamentalHz, Amplitude: amplitude}

	rep.Left, err = AnalyzeSignal(left, cfg)
	if err != nil {
		return Report{}, err
	}

	rep.Right, err = AnalyzeSignal(right, cfg)
	if err != nil {
		return Report{}, err
	}

	return rep, nil
}
