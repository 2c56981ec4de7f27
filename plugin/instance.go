package plugin

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/dsp/processor"
)

// Instance is one running copy of a plugin. It is not safe for concurrent
// use; separate instances share nothing.
type Instance struct {
	desc       *Descriptor
	sampleRate float64

	runtime Runtime
	proc    *processor.Processor
	source  dither.Source
	log     *logrus.Entry

	ports    [][]float32
	controls []float64

	active   bool
	released bool
}

// Instantiate creates an instance of desc running at sampleRate. On error
// the returned instance is nil.
func Instantiate(desc *Descriptor, sampleRate float64, opts ...Option) (*Instance, error) {
	if desc == nil {
		return nil, ErrUnknownPlugin
	}

	err := core.CheckSampleRate(desc.Label, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSampleRate, err)
	}

	cfg := defaultInstanceConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	if cfg.source == nil {
		cfg.source = dither.NewSource()
	}

	rt, err := desc.New(Context{SampleRate: sampleRate})
	if err != nil {
		return nil, fmt.Errorf("plugin %s: create runtime: %w", desc.Label, err)
	}

	proc, err := processor.New(rt, processor.WithMode(desc.Mode))
	if err != nil {
		return nil, fmt.Errorf("plugin %s: %w", desc.Label, err)
	}

	controls := desc.Controls()
	inst := &Instance{
		desc:       desc,
		sampleRate: sampleRate,
		runtime:    rt,
		proc:       proc,
		source:     cfg.source,
		log: cfg.logger.WithFields(logrus.Fields{
			"plugin":      desc.Label,
			"sample_rate": sampleRate,
		}),
		ports:    make([][]float32, len(desc.Ports)),
		controls: make([]float64, len(controls)),
	}

	for i, p := range controls {
		inst.controls[i] = p.Hint.Default
	}

	inst.log.WithField("mode", desc.Mode).Debug("Plugin instantiated")

	return inst, nil
}

// Descriptor returns the descriptor the instance was created from.
func (in *Instance) Descriptor() *Descriptor { return in.desc }

// SampleRate returns the sample rate in Hz.
func (in *Instance) SampleRate() float64 { return in.sampleRate }

// Active reports whether the instance is between Activate and Deactivate.
func (in *Instance) Active() bool { return in.active }

// Seeds returns the current left and right dither generator values.
func (in *Instance) Seeds() (uint32, uint32) { return in.proc.Seeds() }

// Runtime returns the kernel driven by the instance.
func (in *Instance) Runtime() Runtime { return in.runtime }

// ConnectPort binds data to port index. Audio ports are read or written
// for the frame count passed to Run; control ports read data[0]. A nil
// slice unbinds the port. Ports may be rebound between blocks.
func (in *Instance) ConnectPort(index int, data []float32) error {
	if in.released {
		return errReleased
	}

	if index < 0 || index >= len(in.ports) {
		return fmt.Errorf("%w: %d (plugin %s has %d ports)", ErrPortIndex, index, in.desc.Label, len(in.ports))
	}

	if data != nil && in.desc.Ports[index].Kind == Control && len(data) == 0 {
		return fmt.Errorf("%w: control port %d needs at least one element", ErrPortBuffer, index)
	}

	in.ports[index] = data

	return nil
}

// Activate reseeds the dither generators and resets the kernel state.
// Calling it on an active instance starts over.
func (in *Instance) Activate() {
	if in.released {
		return
	}

	in.proc.Activate(in.source)
	in.active = true

	seedL, seedR := in.proc.Seeds()
	in.log.WithFields(logrus.Fields{
		"seed_left":  seedL,
		"seed_right": seedR,
	}).Debug("Plugin activated")
}

// Run processes frames frames. It is a no-op unless the instance is
// active and all four audio ports are bound.
func (in *Instance) Run(frames int) {
	if !in.active || frames <= 0 {
		return
	}

	inL := in.ports[PortInputLeft]
	inR := in.ports[PortInputRight]
	outL := in.ports[PortOutputLeft]
	outR := in.ports[PortOutputRight]

	if inL == nil || inR == nil || outL == nil || outR == nil {
		return
	}

	if len(in.controls) > 0 {
		for i := range in.controls {
			hint := in.desc.Ports[audioPortCount+i].Hint

			v := hint.Default
			if buf := in.ports[audioPortCount+i]; len(buf) > 0 {
				v = float64(buf[0])
			}

			in.controls[i] = hint.Clamp(v)
		}

		in.runtime.Configure(in.controls)
	}

	in.proc.Process(inL, inR, outL, outR, frames)
}

// Control returns the value of control i as last applied by Run, or its
// default before the first block.
func (in *Instance) Control(i int) (float64, bool) {
	if i < 0 || i >= len(in.controls) {
		return 0, false
	}

	return in.controls[i], true
}

// Deactivate stops processing. State is kept until the next Activate.
func (in *Instance) Deactivate() {
	if !in.active {
		return
	}

	in.active = false
	in.log.Debug("Plugin deactivated")
}

// Cleanup releases the instance. Further calls are no-ops and
// ConnectPort returns an error.
func (in *Instance) Cleanup() {
	if in.released {
		return
	}

	in.Deactivate()

	for i := range in.ports {
		in.ports[i] = nil
	}

	in.released = true
	in.log.Debug("Plugin released")
}
