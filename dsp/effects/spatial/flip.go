package spatial

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
)

// FlipMode selects one of eight polarity / channel-order routings.
type FlipMode int

const (
	FlipDry FlipMode = iota
	FlipInvertLeft
	FlipInvertRight
	FlipInvertBoth
	FlipSwap
	FlipSwapInvertLeft
	FlipSwapInvertRight
	FlipSwapInvertBoth

	flipModeCount
)

var flipModeNames = [flipModeCount]string{
	"dry",
	"invert-left",
	"invert-right",
	"invert-both",
	"swap",
	"swap-invert-left",
	"swap-invert-right",
	"swap-invert-both",
}

// String returns the name of the mode.
func (m FlipMode) String() string {
	if m < 0 || m >= flipModeCount {
		return fmt.Sprintf("FlipMode(%d)", int(m))
	}

	return flipModeNames[m]
}

// Flip inverts and/or swaps channels. Inversion is applied after the swap,
// to the output channel named by the mode.
type Flip struct {
	mode FlipMode
}

// NewFlip creates a router in the given mode, clamped to the valid range.
func NewFlip(mode FlipMode) *Flip {
	f := &Flip{}
	f.SetMode(mode)

	return f
}

// SetMode sets the routing, clamped to the valid range.
func (f *Flip) SetMode(mode FlipMode) {
	f.mode = FlipMode(core.ClampInt(int(mode), int(FlipDry), int(flipModeCount-1)))
}

// Mode returns the routing.
func (f *Flip) Mode() FlipMode { return f.mode }

func (f *Flip) Reset() {}

func (f *Flip) ProcessFrame(left, right float64) (float64, float64) {
	if f.mode >= FlipSwap {
		left, right = right, left
	}

	switch f.mode {
	case FlipInvertLeft, FlipSwapInvertLeft:
		left = -left
	case FlipInvertRight, FlipSwapInvertRight:
		right = -right
	case FlipInvertBoth, FlipSwapInvertBoth:
		left, right = -left, -right
	}

	return left, right
}
