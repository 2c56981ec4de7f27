package dither

import (
	"fmt"
	"math"
)

// Quantizer reduces normalized float samples to signed integer words with
// optional dither and noise shaping. It is used when rendered output is
// exported to PCM files, never inside a plugin's block processing.
//
// A Quantizer carries error-feedback history and must be used for one
// channel only.
type Quantizer struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	limit           bool
	shaper          NoiseShaper
	source          Source

	scale   float64
	limitLo int
	limitHi int
}

// NewQuantizer creates a Quantizer. The default configuration is 16-bit,
// triangular dither of 1 LSB, limiting enabled and the 9th-order
// F-weighted shaper.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	shaper := cfg.shaper
	if shaper == nil {
		shaper = NewFIRShaper(cfg.preset.Coefficients())
	}

	source := cfg.source
	if source == nil {
		source = NewSource()
	}

	q := &Quantizer{
		bitDepth:        cfg.bitDepth,
		ditherType:      cfg.ditherType,
		ditherAmplitude: cfg.ditherAmplitude,
		limit:           cfg.limit,
		shaper:          shaper,
		source:          source,
	}
	q.updateDerived()

	return q, nil
}

func (q *Quantizer) updateDerived() {
	q.scale = math.Exp2(float64(q.bitDepth - 1))
	q.limitHi = int(q.scale) - 1
	q.limitLo = -int(q.scale)
}

// ProcessInteger quantizes input (nominally in [-1, +1]) to an integer word.
func (q *Quantizer) ProcessInteger(input float64) int {
	shaped := q.shaper.Shape(input * q.scale)

	result := int(math.Floor(shaped + 0.5 + q.noise()))
	if q.limit {
		result = max(q.limitLo, min(q.limitHi, result))
	}

	q.shaper.RecordError(float64(result) - shaped)

	return result
}

// ProcessSample quantizes input and returns it rescaled to [-1, +1).
func (q *Quantizer) ProcessSample(input float64) float64 {
	return float64(q.ProcessInteger(input)) / q.scale
}

// ProcessInts quantizes src into dst and returns the number of words written.
func (q *Quantizer) ProcessInts(dst []int, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = q.ProcessInteger(src[i])
	}
	return n
}

// Reset clears the noise-shaper history.
func (q *Quantizer) Reset() {
	q.shaper.Reset()
}

func (q *Quantizer) noise() float64 {
	switch q.ditherType {
	case DitherRectangular:
		return q.ditherAmplitude * (q.source.Float64() - 0.5)
	case DitherTriangular:
		return q.ditherAmplitude * (q.source.Float64() - q.source.Float64())
	default:
		return 0
	}
}

// BitDepth returns the target word length.
func (q *Quantizer) BitDepth() int { return q.bitDepth }

// DitherType returns the dither noise type.
func (q *Quantizer) DitherType() DitherType { return q.ditherType }

// Limit reports whether output limiting is enabled.
func (q *Quantizer) Limit() bool { return q.limit }

// SetBitDepth changes the target word length.
func (q *Quantizer) SetBitDepth(bits int) error {
	if bits < minBitDepth || bits > maxBitDepth {
		return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
	}

	q.bitDepth = bits
	q.updateDerived()

	return nil
}
