package dither

import "fmt"

// Preset identifies a predefined FIR noise-shaping coefficient set for
// PCM export.
type Preset int

const (
	PresetNone Preset = iota // No shaping
	PresetEFB                // Simple error feedback, 1st order
	Preset2SC                // Simple 2nd-order highpass
	Preset3FC                // F-weighted, 3rd order
	Preset9FC                // F-weighted, 9th order (default)
	PresetSBM                // Super Bit Mapping style, 12th order

	presetCount // sentinel
)

var presetNames = [presetCount]string{
	"none", "efb", "2sc", "3fc", "9fc", "sbm",
}

// String returns the name of the preset.
func (p Preset) String() string {
	if p.Valid() {
		return presetNames[p]
	}
	return fmt.Sprintf("Preset(%d)", p)
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < presetCount
}

// ParsePreset returns the preset with the given name.
func ParsePreset(name string) (Preset, error) {
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return PresetNone, fmt.Errorf("dither: unknown noise-shaping preset %q", name)
}

// Coefficients returns a copy of the FIR coefficients, nil for [PresetNone].
func (p Preset) Coefficients() []float64 {
	if !p.Valid() || len(presetCoeffs[p]) == 0 {
		return nil
	}
	return append([]float64(nil), presetCoeffs[p]...)
}

var presetCoeffs = [presetCount][]float64{
	PresetNone: nil,
	PresetEFB:  {1},
	Preset2SC:  {1.0, -0.5},
	Preset3FC:  {1.623, -0.982, 0.109},
	Preset9FC: {
		2.412, -3.370, 3.937, -4.174, 3.353,
		-2.205, 1.281, -0.569, 0.0847,
	},
	PresetSBM: {
		1.47933, -1.59032, 1.64436, -1.36613,
		0.926704, -0.557931, 0.26786, -0.106726,
		0.028516, 0.00123066, -0.00616555, 0.003067,
	},
}
