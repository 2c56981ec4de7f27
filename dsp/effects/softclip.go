package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

const (
	minSoftClipDrive = 0.0
	maxSoftClipDrive = 24.0

	// softClipCorner is the output of the cubic at |x| = 1; makeup gain of
	// 1.5 brings it back to full scale.
	softClipCorner = 2.0 / 3
	softClipMakeup = 1.5
)

// SoftClipOption mutates soft clip construction parameters.
type SoftClipOption func(*softClipConfig) error

type softClipConfig struct {
	driveDB float64
}

// WithDrive sets the input drive in dB. Range: [0, 24].
func WithDrive(db float64) SoftClipOption {
	return func(cfg *softClipConfig) error {
		if db < minSoftClipDrive || db > maxSoftClipDrive || math.IsNaN(db) {
			return fmt.Errorf("soft clip drive must be in [%g, %g] dB: %f",
				minSoftClipDrive, maxSoftClipDrive, db)
		}

		cfg.driveDB = db

		return nil
	}
}

// SoftClip is a cubic waveshaper: x - x³/3 inside the unit interval and a
// flat ±2/3 corner outside it, followed by makeup gain.
type SoftClip struct {
	driveDB float64
	drive   float64
}

// NewSoftClip creates a soft clipper with no drive by default.
func NewSoftClip(opts ...SoftClipOption) (*SoftClip, error) {
	var cfg softClipConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	s := &SoftClip{}
	s.SetDrive(cfg.driveDB)

	return s, nil
}

// SetDrive sets the drive, clamped to [0, 24] dB.
func (s *SoftClip) SetDrive(db float64) {
	s.driveDB = core.Clamp(db, minSoftClipDrive, maxSoftClipDrive)
	s.drive = core.DBToLinear(s.driveDB)
}

// Drive returns the drive in dB.
func (s *SoftClip) Drive() float64 { return s.driveDB }

func (s *SoftClip) Reset() {}

func (s *SoftClip) ProcessFrame(left, right float64) (float64, float64) {
	return s.shape(left), s.shape(right)
}

func (s *SoftClip) shape(x float64) float64 {
	x *= s.drive

	switch {
	case x >= 1:
		x = softClipCorner
	case x <= -1:
		x = -softClipCorner
	default:
		x -= x * x * x / 3
	}

	return x * softClipMakeup
}
