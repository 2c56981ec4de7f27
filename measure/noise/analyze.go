package noise

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/dsp/processor"
	"github.com/cwbudde/algo-fx/plugin"
)

// Report holds the residual spectra of both channels.
type Report struct {
	Label string
	Mode  processor.Mode
	Left  Spectrum
	Right Spectrum
}

// Analyze renders left/right through desc at default control values and
// through an unguarded, undithered copy of the same kernel, then analyzes
// the difference per channel. opts are passed to the plugin instance,
// e.g. plugin.WithSource for a reproducible result.
func Analyze(desc *plugin.Descriptor, left, right []float32, cfg Config, opts ...plugin.Option) (Report, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Report{}, err
	}

	if desc == nil {
		return Report{}, plugin.ErrUnknownPlugin
	}

	n := min(len(left), len(right))

	shippedL, shippedR, err := renderInstance(desc, left[:n], right[:n], cfg.SampleRate, opts)
	if err != nil {
		return Report{}, err
	}

	refL, refR, err := renderReference(desc, left[:n], right[:n], cfg.SampleRate)
	if err != nil {
		return Report{}, err
	}

	rep := Report{Label: desc.Label, Mode: desc.Mode}

	rep.Left, err = ResidualSpectrum(difference(shippedL, refL), cfg)
	if err != nil {
		return Report{}, err
	}

	rep.Right, err = ResidualSpectrum(difference(shippedR, refR), cfg)
	if err != nil {
		return Report{}, err
	}

	return rep, nil
}

func renderInstance(desc *plugin.Descriptor, left, right []float32, sampleRate float64, opts []plugin.Option) ([]float32, []float32, error) {
	inst, err := plugin.Instantiate(desc, sampleRate, opts...)
	if err != nil {
		return nil, nil, err
	}
	defer inst.Cleanup()

	outL := make([]float32, len(left))
	outR := make([]float32, len(right))

	for i, buf := range [][]float32{left, right, outL, outR} {
		err := inst.ConnectPort(i, buf)
		if err != nil {
			return nil, nil, err
		}
	}

	inst.Activate()
	inst.Run(len(left))
	inst.Deactivate()

	return outL, outR, nil
}

func renderReference(desc *plugin.Descriptor, left, right []float32, sampleRate float64) ([]float32, []float32, error) {
	rt, err := desc.New(plugin.Context{SampleRate: sampleRate})
	if err != nil {
		return nil, nil, fmt.Errorf("noise: create %s runtime: %w", desc.Label, err)
	}

	controls := desc.Controls()
	if len(controls) > 0 {
		values := make([]float64, len(controls))
		for i, p := range controls {
			values[i] = p.Hint.Default
		}

		rt.Configure(values)
	}

	proc, err := processor.New(rt, processor.WithMode(processor.ModeRaw))
	if err != nil {
		return nil, nil, err
	}

	// Raw mode never reads the seeds.
	proc.Activate(dither.NewSeededSource(0))

	outL := make([]float32, len(left))
	outR := make([]float32, len(right))
	proc.Process(left, right, outL, outR, len(left))

	return outL, outR, nil
}

func difference(a, b []float32) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = float64(a[i]) - float64(b[i])
	}

	return out
}
