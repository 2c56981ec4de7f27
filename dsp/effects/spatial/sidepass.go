package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// SidepassOption mutates sidepass construction parameters.
type SidepassOption func(*sidepassConfig) error

type sidepassConfig struct {
	cutoff float64
}

// WithCutoff sets the normalized cutoff. 0 leaves the side channel
// untouched. Range: [0, 1].
func WithCutoff(cutoff float64) SidepassOption {
	return func(cfg *sidepassConfig) error {
		if cutoff < 0 || cutoff > 1 || math.IsNaN(cutoff) {
			return fmt.Errorf("sidepass cutoff must be in [0, 1]: %f", cutoff)
		}

		cfg.cutoff = cutoff

		return nil
	}
}

// Sidepass highpasses the side channel of a stereo signal, removing
// low-frequency width while leaving mid untouched.
//
// Two one-pole integrators are used on alternate frames, so each runs at
// half the sample rate on interleaved samples. The coefficient is
// cutoff³ normalized to a 44.1 kHz reference.
type Sidepass struct {
	sampleRate float64
	cutoff     float64
	k          float64

	iirA float64
	iirB float64
	flip bool
}

// NewSidepass creates a sidepass filter for the given sample rate.
func NewSidepass(sampleRate float64, opts ...SidepassOption) (*Sidepass, error) {
	err := core.CheckSampleRate("sidepass", sampleRate)
	if err != nil {
		return nil, err
	}

	var cfg sidepassConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	s := &Sidepass{sampleRate: sampleRate}
	s.SetCutoff(cfg.cutoff)

	return s, nil
}

// SetCutoff sets the normalized cutoff, clamped to [0, 1].
func (s *Sidepass) SetCutoff(cutoff float64) {
	s.cutoff = core.Clamp(cutoff, 0, 1)
	s.k = s.cutoff * s.cutoff * s.cutoff / core.SampleRateScale(s.sampleRate)
}

// Cutoff returns the normalized cutoff.
func (s *Sidepass) Cutoff() float64 { return s.cutoff }

// SampleRate returns the sample rate in Hz.
func (s *Sidepass) SampleRate() float64 { return s.sampleRate }

// Coefficient returns the integrator coefficient in use.
func (s *Sidepass) Coefficient() float64 { return s.k }

// Reset clears both integrators and the alternation flag. The first frame
// after Reset runs through integrator B, the second through A.
func (s *Sidepass) Reset() {
	s.iirA = 0
	s.iirB = 0
	s.flip = false
}

func (s *Sidepass) ProcessFrame(left, right float64) (float64, float64) {
	mid := left + right
	side := left - right

	if s.flip {
		s.iirA = s.iirA*(1-s.k) + side*s.k
		side -= s.iirA
	} else {
		s.iirB = s.iirB*(1-s.k) + side*s.k
		side -= s.iirB
	}

	s.flip = !s.flip

	return (mid + side) / 2, (mid - side) / 2
}
