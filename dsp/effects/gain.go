package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

const (
	defaultGainDB = 0.0
	minGainDB     = -40.0
	maxGainDB     = 40.0
)

// GainOption mutates gain construction parameters.
type GainOption func(*gainConfig) error

type gainConfig struct {
	db float64
}

func defaultGainConfig() gainConfig {
	return gainConfig{db: defaultGainDB}
}

// WithGainDB sets the gain in decibels. Range: [-40, 40].
func WithGainDB(db float64) GainOption {
	return func(cfg *gainConfig) error {
		if db < minGainDB || db > maxGainDB || math.IsNaN(db) {
			return fmt.Errorf("gain must be in [%g, %g] dB: %f", minGainDB, maxGainDB, db)
		}

		cfg.db = db

		return nil
	}
}

// Gain is a plain volume control. The gain is applied by the channel
// processor through [Gain.PreGain], ahead of the (identity) transform, so
// the result is dithered like every other kernel's output.
type Gain struct {
	db     float64
	linear float64
}

// NewGain creates a gain stage, unity by default.
func NewGain(opts ...GainOption) (*Gain, error) {
	cfg := defaultGainConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	g := &Gain{}
	g.SetGainDB(cfg.db)

	return g, nil
}

// SetGainDB sets the gain, clamped to [-40, 40] dB.
func (g *Gain) SetGainDB(db float64) {
	g.db = core.Clamp(db, minGainDB, maxGainDB)
	g.linear = core.DBToLinear(g.db)
}

// GainDB returns the gain in decibels.
func (g *Gain) GainDB() float64 { return g.db }

// PreGain returns the linear gain factor.
func (g *Gain) PreGain() float64 { return g.linear }

// Reset is a no-op; Gain has no memory.
func (g *Gain) Reset() {}

// ProcessFrame returns the frame unchanged.
func (g *Gain) ProcessFrame(left, right float64) (float64, float64) {
	return left, right
}
