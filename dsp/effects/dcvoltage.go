package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// DCVoltageOption mutates DC voltage construction parameters.
type DCVoltageOption func(*DCVoltage) error

// WithVoltage sets the offset added to both channels. Range: [-1, 1].
func WithVoltage(v float64) DCVoltageOption {
	return func(d *DCVoltage) error {
		if v < -1 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("dc voltage must be in [-1, 1]: %f", v)
		}

		d.voltage = v

		return nil
	}
}

// DCVoltage adds a constant offset to both channels.
type DCVoltage struct {
	voltage float64
}

// NewDCVoltage creates a DC offset stage with zero offset by default.
func NewDCVoltage(opts ...DCVoltageOption) (*DCVoltage, error) {
	d := &DCVoltage{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(d)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

// SetVoltage sets the offset, clamped to [-1, 1].
func (d *DCVoltage) SetVoltage(v float64) { d.voltage = core.Clamp(v, -1, 1) }

// Voltage returns the offset.
func (d *DCVoltage) Voltage() float64 { return d.voltage }

func (d *DCVoltage) Reset() {}

func (d *DCVoltage) ProcessFrame(left, right float64) (float64, float64) {
	return left + d.voltage, right + d.voltage
}
