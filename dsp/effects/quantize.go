package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/dither"
)

const (
	defaultQuantizeBits = 16
	minQuantizeBits     = 4
	maxQuantizeBits     = 24
)

// QuantizeOption mutates quantizer construction parameters.
type QuantizeOption func(*quantizeConfig) error

type quantizeConfig struct {
	bits int
}

// WithQuantizeBits sets the target word length. Range: [4, 24].
func WithQuantizeBits(bits int) QuantizeOption {
	return func(cfg *quantizeConfig) error {
		if bits < minQuantizeBits || bits > maxQuantizeBits {
			return fmt.Errorf("quantize bits must be in [%d, %d]: %d",
				minQuantizeBits, maxQuantizeBits, bits)
		}

		cfg.bits = bits

		return nil
	}
}

// Quantize requantizes both channels to a fixed word length using the
// position-indexed quadratic dither sequence. The left channel draws first
// in every frame. The output lies exactly on the target grid, so the
// channel processor must not add float dither after it.
type Quantize struct {
	bits  int
	scale float64
	noise dither.Quadratic
}

// NewQuantize creates a 16-bit quantizer by default.
func NewQuantize(opts ...QuantizeOption) (*Quantize, error) {
	cfg := quantizeConfig{bits: defaultQuantizeBits}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	q := &Quantize{}
	q.SetBits(cfg.bits)

	return q, nil
}

// SetBits sets the word length, clamped to [4, 24].
func (q *Quantize) SetBits(bits int) {
	q.bits = core.ClampInt(bits, minQuantizeBits, maxQuantizeBits)
	q.scale = math.Ldexp(1, q.bits-1)
}

// Bits returns the word length.
func (q *Quantize) Bits() int { return q.bits }

// Reset rewinds the dither sequence.
func (q *Quantize) Reset() { q.noise.Reset() }

func (q *Quantize) ProcessFrame(left, right float64) (float64, float64) {
	left = q.requantize(left)
	right = q.requantize(right)

	return left, right
}

func (q *Quantize) requantize(x float64) float64 {
	x *= q.scale
	x += q.noise.Next()
	x = math.Floor(x)

	return x / q.scale
}
