package plugin

import (
	"fmt"
	"math"
)

// PortKind distinguishes audio buffers from control values.
type PortKind int

const (
	AudioInput PortKind = iota
	AudioOutput
	Control
)

// String returns the name of the port kind.
func (k PortKind) String() string {
	switch k {
	case AudioInput:
		return "audio-in"
	case AudioOutput:
		return "audio-out"
	case Control:
		return "control"
	default:
		return fmt.Sprintf("PortKind(%d)", int(k))
	}
}

// Hint describes the range of a control port.
type Hint struct {
	Min     float64
	Max     float64
	Default float64
	Integer bool
}

// Clamp maps a host-supplied value into the hinted range. Integer ports
// round to the nearest step. Non-finite values fall back to the default.
func (h Hint) Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return h.Default
	}

	if h.Integer {
		v = math.Round(v)
	}

	if v < h.Min {
		return h.Min
	}

	if v > h.Max {
		return h.Max
	}

	return v
}

// Port describes one port of a plugin.
type Port struct {
	Name string
	Kind PortKind
	Hint Hint
}

// IsAudio reports whether p carries an audio buffer.
func (p Port) IsAudio() bool { return p.Kind == AudioInput || p.Kind == AudioOutput }

// Audio port indices shared by every descriptor.
const (
	PortInputLeft = iota
	PortInputRight
	PortOutputLeft
	PortOutputRight

	audioPortCount
)

func stereoPorts(controls ...Port) []Port {
	ports := []Port{
		{Name: "Input L", Kind: AudioInput},
		{Name: "Input R", Kind: AudioInput},
		{Name: "Output L", Kind: AudioOutput},
		{Name: "Output R", Kind: AudioOutput},
	}

	return append(ports, controls...)
}

func control(name string, lo, hi, def float64) Port {
	return Port{Name: name, Kind: Control, Hint: Hint{Min: lo, Max: hi, Default: def}}
}

func integerControl(name string, lo, hi, def int) Port {
	return Port{
		Name: name,
		Kind: Control,
		Hint: Hint{Min: float64(lo), Max: float64(hi), Default: float64(def), Integer: true},
	}
}
