// Package dither implements the noise sources used when double-precision
// effect output is narrowed to a smaller sample format.
//
// Three generators live here:
//
//   - [State]: a per-channel xorshift32 generator producing noise-shaped
//     floating-point dither scaled to the exponent of each sample. Every
//     dithered plugin owns two independent states.
//   - [Quadratic]: a position-indexed prime-chain sequence with sign
//     alternation, used by integer requantizing effects.
//   - [Quantizer]: an offline PCM exporter that reduces rendered audio to
//     integer sample words with TPDF dither and FIR error feedback.
package dither

import "fmt"

// DitherType selects the probability distribution used by [Quantizer].
type DitherType int

const (
	// DitherNone applies no dither (plain truncation).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF).
	DitherTriangular

	ditherTypeCount // sentinel for validation
)

var ditherTypeNames = [ditherTypeCount]string{
	"None", "Rectangular", "Triangular",
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt.Valid() {
		return ditherTypeNames[dt]
	}
	return fmt.Sprintf("DitherType(%d)", dt)
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType maps a case-sensitive lower-case name to a DitherType.
func ParseDitherType(name string) (DitherType, error) {
	switch name {
	case "none":
		return DitherNone, nil
	case "rect", "rectangular":
		return DitherRectangular, nil
	case "tpdf", "triangular":
		return DitherTriangular, nil
	default:
		return DitherNone, fmt.Errorf("dither: unknown dither type %q", name)
	}
}
