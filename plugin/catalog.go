package plugin

import (
	"sync"

	"github.com/cwbudde/algo-fx/dsp/effects"
	"github.com/cwbudde/algo-fx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-fx/dsp/effects/spatial"
	"github.com/cwbudde/algo-fx/dsp/processor"
)

const (
	catalogMaker     = "algo-fx"
	catalogCopyright = "MIT"
)

// Unique plugin IDs of the built-in catalog.
const (
	IDGain uint32 = 4100 + iota
	IDBitShiftGain
	IDDCVoltage
	IDConsoleChannel
	IDConsoleBuss
	IDSoftClip
	IDDerivative
	IDQuantize
	IDCurve
	IDRecurve
	IDMidSideEncode
	IDMidSideDecode
	IDSidepass
	IDFlip
	IDLeftMono
	IDRightMono
	IDSwap
)

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry holding the built-in
// catalog. It is built once and must not be modified.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewCatalog()
	})

	return defaultRegistry
}

// NewCatalog returns a fresh registry pre-populated with all built-in
// plugins. Callers may register further descriptors on it.
//
//nolint:funlen
func NewCatalog() *Registry {
	r := NewRegistry()

	r.MustRegister(&Descriptor{
		ID: IDGain, Label: "gain", Name: "Gain",
		Ports: stereoPorts(control("Gain (dB)", -40, 40, 0)),
		Mode:  processor.ModeDither,
		New: func(_ Context) (Runtime, error) {
			fx, err := effects.NewGain()
			if err != nil {
				return nil, err
			}

			return gainRuntime{fx}, nil
		},
	})
	r.MustRegister(&Descriptor{
		ID: IDBitShiftGain, Label: "bitshiftgain", Name: "Bit Shift Gain",
		Ports: stereoPorts(integerControl("Shift (bits)", -16, 16, 0)),
		Mode:  processor.ModeRaw,
		New: func(_ Context) (Runtime, error) {
			fx, err := effects.NewBitShiftGain()
			if err != nil {
				return nil, err
			}

			return bitShiftRuntime{fx}, nil
		},
	})
	r.MustRegister(&Descriptor{
		ID: IDDCVoltage, Label: "dcvoltage", Name: "DC Voltage",
		Ports: stereoPorts(control("Voltage", -1, 1, 0)),
		Mode:  processor.ModeRaw,
		New: func(_ Context) (Runtime, error) {
			fx, err := effects.NewDCVoltage()
			if err != nil {
				return nil, err
			}

			return dcVoltageRuntime{fx}, nil
		},
	})
	r.MustRegister(fixed(IDConsoleChannel, "consolechannel", "Console Channel", processor.ModeDither,
		func() processor.Kernel { return effects.NewConsoleChannel() }))
	r.MustRegister(fixed(IDConsoleBuss, "consolebuss", "Console Buss", processor.ModeDither,
		func() processor.Kernel { return effects.NewConsoleBuss() }))
	r.MustRegister(&Descriptor{
		ID: IDSoftClip, Label: "softclip", Name: "Soft Clip",
		Ports: stereoPorts(control("Drive (dB)", 0, 24, 0)),
		Mode:  processor.ModeDither,
		New: func(_ Context) (Runtime, error) {
			fx, err := effects.NewSoftClip()
			if err != nil {
				return nil, err
			}

			return softClipRuntime{fx}, nil
		},
	})
	r.MustRegister(fixed(IDDerivative, "derivative", "Derivative", processor.ModeDither,
		func() processor.Kernel { return effects.NewDerivative() }))
	r.MustRegister(&Descriptor{
		ID: IDQuantize, Label: "quantize", Name: "Quantize",
		Ports: stereoPorts(integerControl("Bits", 4, 24, 16)),
		Mode:  processor.ModeGuard,
		New: func(_ Context) (Runtime, error) {
			fx, err := effects.NewQuantize()
			if err != nil {
				return nil, err
			}

			return quantizeRuntime{fx}, nil
		},
	})
	r.MustRegister(fixed(IDCurve, "curve", "Curve", processor.ModeDither,
		func() processor.Kernel { return dynamics.NewCurve() }))
	r.MustRegister(fixed(IDRecurve, "recurve", "Recurve", processor.ModeDither,
		func() processor.Kernel { return dynamics.NewRecurve() }))
	r.MustRegister(&Descriptor{
		ID: IDMidSideEncode, Label: "midside-encode", Name: "Mid/Side Encoder",
		Ports: stereoPorts(control("Balance", 0, 1, 0.5)),
		Mode:  processor.ModeDither,
		New: func(_ Context) (Runtime, error) {
			fx, err := spatial.NewMidSideEncoder()
			if err != nil {
				return nil, err
			}

			return midSideEncodeRuntime{fx}, nil
		},
	})
	r.MustRegister(&Descriptor{
		ID: IDMidSideDecode, Label: "midside-decode", Name: "Mid/Side Decoder",
		Ports: stereoPorts(control("Balance", 0, 1, 0.5)),
		Mode:  processor.ModeDither,
		New: func(_ Context) (Runtime, error) {
			fx, err := spatial.NewMidSideDecoder()
			if err != nil {
				return nil, err
			}

			return midSideDecodeRuntime{fx}, nil
		},
	})
	r.MustRegister(&Descriptor{
		ID: IDSidepass, Label: "sidepass", Name: "Sidepass",
		Ports: stereoPorts(control("Cutoff", 0, 1, 0)),
		Mode:  processor.ModeDither,
		New: func(ctx Context) (Runtime, error) {
			fx, err := spatial.NewSidepass(ctx.SampleRate)
			if err != nil {
				return nil, err
			}

			return sidepassRuntime{fx}, nil
		},
	})
	r.MustRegister(&Descriptor{
		ID: IDFlip, Label: "flip", Name: "Flip",
		Ports: stereoPorts(integerControl("Mode", 0, 7, 0)),
		Mode:  processor.ModeRaw,
		New: func(_ Context) (Runtime, error) {
			return flipRuntime{spatial.NewFlip(spatial.FlipDry)}, nil
		},
	})
	r.MustRegister(fixed(IDLeftMono, "leftmono", "Left Mono", processor.ModeRaw,
		func() processor.Kernel { return spatial.LeftMono{} }))
	r.MustRegister(fixed(IDRightMono, "rightmono", "Right Mono", processor.ModeRaw,
		func() processor.Kernel { return spatial.RightMono{} }))
	r.MustRegister(fixed(IDSwap, "swap", "Swap", processor.ModeRaw,
		func() processor.Kernel { return spatial.Swap{} }))

	for _, d := range r.byID {
		d.Maker = catalogMaker
		d.Copyright = catalogCopyright
	}

	return r
}

// fixed describes a plugin with no controls.
func fixed(id uint32, label, name string, mode processor.Mode, newKernel func() processor.Kernel) *Descriptor {
	return &Descriptor{
		ID:    id,
		Label: label,
		Name:  name,
		Ports: stereoPorts(),
		Mode:  mode,
		New: func(_ Context) (Runtime, error) {
			return fixedRuntime{newKernel()}, nil
		},
	}
}
