package plugin

import (
	"github.com/cwbudde/algo-fx/dsp/effects"
	"github.com/cwbudde/algo-fx/dsp/effects/spatial"
	"github.com/cwbudde/algo-fx/dsp/processor"
)

// fixedRuntime wraps a kernel that has no controls.
type fixedRuntime struct {
	processor.Kernel
}

func (fixedRuntime) Configure([]float64) {}

type gainRuntime struct {
	*effects.Gain
}

func (r gainRuntime) Configure(c []float64) { r.SetGainDB(c[0]) }

type bitShiftRuntime struct {
	*effects.BitShiftGain
}

func (r bitShiftRuntime) Configure(c []float64) { r.SetShift(int(c[0])) }

type dcVoltageRuntime struct {
	*effects.DCVoltage
}

func (r dcVoltageRuntime) Configure(c []float64) { r.SetVoltage(c[0]) }

type softClipRuntime struct {
	*effects.SoftClip
}

func (r softClipRuntime) Configure(c []float64) { r.SetDrive(c[0]) }

type quantizeRuntime struct {
	*effects.Quantize
}

func (r quantizeRuntime) Configure(c []float64) { r.SetBits(int(c[0])) }

type midSideEncodeRuntime struct {
	*spatial.MidSideEncoder
}

func (r midSideEncodeRuntime) Configure(c []float64) { r.SetBalance(c[0]) }

type midSideDecodeRuntime struct {
	*spatial.MidSideDecoder
}

func (r midSideDecodeRuntime) Configure(c []float64) { r.SetBalance(c[0]) }

type sidepassRuntime struct {
	*spatial.Sidepass
}

func (r sidepassRuntime) Configure(c []float64) { r.SetCutoff(c[0]) }

type flipRuntime struct {
	*spatial.Flip
}

func (r flipRuntime) Configure(c []float64) { r.SetMode(spatial.FlipMode(c[0])) }
