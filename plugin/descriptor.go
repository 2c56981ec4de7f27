package plugin

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/processor"
)

// Context provides environmental information that runtimes need.
type Context struct {
	SampleRate float64
}

// Runtime is a kernel that accepts control values. Configure receives one
// value per control port, already clamped to its hint, at the start of
// every block.
type Runtime interface {
	processor.Kernel
	Configure(controls []float64)
}

// Factory builds one Runtime for an instance.
type Factory func(ctx Context) (Runtime, error)

// Descriptor is the static metadata of a plugin plus its runtime factory.
type Descriptor struct {
	ID        uint32
	Label     string
	Name      string
	Maker     string
	Copyright string
	Ports     []Port
	Mode      processor.Mode
	New       Factory
}

// Controls returns the control ports in order.
func (d *Descriptor) Controls() []Port {
	if len(d.Ports) <= audioPortCount {
		return nil
	}

	return d.Ports[audioPortCount:]
}

// PortIndex returns the index of the named port, or -1.
func (d *Descriptor) PortIndex(name string) int {
	for i, p := range d.Ports {
		if p.Name == name {
			return i
		}
	}

	return -1
}

// Validate checks the descriptor's port layout and factory.
func (d *Descriptor) Validate() error {
	if d.Label == "" {
		return errors.New("plugin: empty label")
	}

	if d.New == nil {
		return fmt.Errorf("plugin %s: nil factory", d.Label)
	}

	if !d.Mode.Valid() {
		return fmt.Errorf("plugin %s: invalid mode: %d", d.Label, d.Mode)
	}

	if len(d.Ports) < audioPortCount {
		return fmt.Errorf("plugin %s: need %d audio ports, have %d", d.Label, audioPortCount, len(d.Ports))
	}

	wantKinds := [audioPortCount]PortKind{AudioInput, AudioInput, AudioOutput, AudioOutput}
	for i, kind := range wantKinds {
		if d.Ports[i].Kind != kind {
			return fmt.Errorf("plugin %s: port %d must be %s", d.Label, i, kind)
		}
	}

	for i, p := range d.Controls() {
		if p.Kind != Control {
			return fmt.Errorf("plugin %s: port %d must be a control", d.Label, i+audioPortCount)
		}

		if p.Hint.Min > p.Hint.Max || p.Hint.Default < p.Hint.Min || p.Hint.Default > p.Hint.Max {
			return fmt.Errorf("plugin %s: control %q default %g outside [%g, %g]",
				d.Label, p.Name, p.Hint.Default, p.Hint.Min, p.Hint.Max)
		}
	}

	return nil
}
