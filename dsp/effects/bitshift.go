package effects

import "fmt"

const (
	minShift = -16
	maxShift = 16
)

// shiftGains holds 2^n for n in [minShift, maxShift], indexed by n-minShift.
var shiftGains = [maxShift - minShift + 1]float64{
	0.0000152587890625, 0.000030517578125, 0.00006103515625, 0.0001220703125,
	0.000244140625, 0.00048828125, 0.0009765625, 0.001953125,
	0.00390625, 0.0078125, 0.015625, 0.03125,
	0.0625, 0.125, 0.25, 0.5,
	1,
	2, 4, 8, 16,
	32, 64, 128, 256,
	512, 1024, 2048, 4096,
	8192, 16384, 32768, 65536,
}

// ShiftGain returns the exact power-of-two multiplier for a shift of n
// bits. Shifts outside [-16, 16] yield unity gain.
func ShiftGain(n int) float64 {
	if n < minShift || n > maxShift {
		return 1
	}

	return shiftGains[n-minShift]
}

// BitShiftGainOption mutates bit-shift gain construction parameters.
type BitShiftGainOption func(*bitShiftGainConfig) error

type bitShiftGainConfig struct {
	shift int
}

// WithShift sets the shift in bits. Range: [-16, 16].
func WithShift(n int) BitShiftGainOption {
	return func(cfg *bitShiftGainConfig) error {
		if n < minShift || n > maxShift {
			return fmt.Errorf("bit shift must be in [%d, %d]: %d", minShift, maxShift, n)
		}

		cfg.shift = n

		return nil
	}
}

// BitShiftGain scales both channels by 2^shift. Power-of-two gains only
// change the exponent, so the output is bit-exact and needs no dither.
type BitShiftGain struct {
	shift int
	gain  float64
}

// NewBitShiftGain creates a bit-shift gain, unity by default.
func NewBitShiftGain(opts ...BitShiftGainOption) (*BitShiftGain, error) {
	var cfg bitShiftGainConfig

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	b := &BitShiftGain{}
	b.SetShift(cfg.shift)

	return b, nil
}

// SetShift sets the shift. Out-of-range values give unity gain, matching
// [ShiftGain].
func (b *BitShiftGain) SetShift(n int) {
	b.shift = n
	b.gain = ShiftGain(n)
}

// Shift returns the configured shift in bits.
func (b *BitShiftGain) Shift() int { return b.shift }

// Gain returns the linear multiplier in use.
func (b *BitShiftGain) Gain() float64 { return b.gain }

func (b *BitShiftGain) Reset() {}

func (b *BitShiftGain) ProcessFrame(left, right float64) (float64, float64) {
	return left * b.gain, right * b.gain
}
