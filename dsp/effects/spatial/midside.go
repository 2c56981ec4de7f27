package spatial

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
)

const defaultBalance = 0.5

// MidSideOption mutates mid/side codec construction parameters.
type MidSideOption func(*midSideConfig) error

type midSideConfig struct {
	balance float64
}

func defaultMidSideConfig() midSideConfig {
	return midSideConfig{balance: defaultBalance}
}

// WithBalance sets the mid/side balance. 0 keeps only mid, 1 only side,
// 0.5 weights both equally. Range: [0, 1].
func WithBalance(balance float64) MidSideOption {
	return func(cfg *midSideConfig) error {
		if balance < 0 || balance > 1 || math.IsNaN(balance) {
			return fmt.Errorf("mid/side balance must be in [0, 1]: %f", balance)
		}

		cfg.balance = balance

		return nil
	}
}

// midSideGains holds the weights derived from a balance setting.
type midSideGains struct {
	balance float64
	mid     float64
	side    float64
}

func (g *midSideGains) set(balance float64) {
	g.balance = core.Clamp(balance, 0, 1)
	g.side = g.balance * 2
	g.mid = 2 - g.side
}

func newMidSideGains(opts []MidSideOption) (midSideGains, error) {
	cfg := defaultMidSideConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return midSideGains{}, err
		}
	}

	var g midSideGains
	g.set(cfg.balance)

	return g, nil
}

// MidSideEncoder converts left/right to mid (left output) and side (right
// output).
type MidSideEncoder struct {
	gains midSideGains
}

// NewMidSideEncoder creates an encoder with balance 0.5 by default.
func NewMidSideEncoder(opts ...MidSideOption) (*MidSideEncoder, error) {
	g, err := newMidSideGains(opts)
	if err != nil {
		return nil, err
	}

	return &MidSideEncoder{gains: g}, nil
}

// SetBalance sets the balance, clamped to [0, 1].
func (e *MidSideEncoder) SetBalance(balance float64) { e.gains.set(balance) }

// Balance returns the balance.
func (e *MidSideEncoder) Balance() float64 { return e.gains.balance }

func (e *MidSideEncoder) Reset() {}

func (e *MidSideEncoder) ProcessFrame(left, right float64) (float64, float64) {
	return (left + right) * e.gains.mid, (left - right) * e.gains.side
}

// MidSideDecoder converts mid (left input) and side (right input) back to
// left/right. At equal balance it inverts [MidSideEncoder].
type MidSideDecoder struct {
	gains midSideGains
}

// NewMidSideDecoder creates a decoder with balance 0.5 by default.
func NewMidSideDecoder(opts ...MidSideOption) (*MidSideDecoder, error) {
	g, err := newMidSideGains(opts)
	if err != nil {
		return nil, err
	}

	return &MidSideDecoder{gains: g}, nil
}

// SetBalance sets the balance, clamped to [0, 1].
func (d *MidSideDecoder) SetBalance(balance float64) { d.gains.set(balance) }

// Balance returns the balance.
func (d *MidSideDecoder) Balance() float64 { return d.gains.balance }

func (d *MidSideDecoder) Reset() {}

func (d *MidSideDecoder) ProcessFrame(mid, side float64) (float64, float64) {
	mid *= d.gains.mid
	side *= d.gains.side

	return (mid + side) / 2, (mid - side) / 2
}
