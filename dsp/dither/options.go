package dither

import (
	"fmt"
	"math"
)

const (
	defaultBitDepth        = 16
	defaultDitherType      = DitherTriangular
	defaultDitherAmplitude = 1.0
	defaultPreset          = Preset9FC
	minBitDepth            = 2
	maxBitDepth            = 32
)

type config struct {
	bitDepth        int
	ditherType      DitherType
	ditherAmplitude float64
	limit           bool
	shaper          NoiseShaper
	preset          Preset
	source          Source
}

func defaultConfig() config {
	return config{
		bitDepth:        defaultBitDepth,
		ditherType:      defaultDitherType,
		ditherAmplitude: defaultDitherAmplitude,
		limit:           true,
		preset:          defaultPreset,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBitDepth sets the target word length (2–32, default 16).
func WithBitDepth(bits int) Option {
	return func(cfg *config) error {
		if bits < minBitDepth || bits > maxBitDepth {
			return fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bits)
		}

		cfg.bitDepth = bits

		return nil
	}
}

// WithDitherType sets the dither noise PDF (default [DitherTriangular]).
func WithDitherType(dt DitherType) Option {
	return func(cfg *config) error {
		if !dt.Valid() {
			return fmt.Errorf("dither: invalid dither type: %d", dt)
		}

		cfg.ditherType = dt

		return nil
	}
}

// WithDitherAmplitude sets the dither amplitude in LSB (default 1.0).
func WithDitherAmplitude(amp float64) Option {
	return func(cfg *config) error {
		if amp < 0 || math.IsNaN(amp) || math.IsInf(amp, 0) {
			return fmt.Errorf("dither: amplitude must be >= 0 and finite: %f", amp)
		}

		cfg.ditherAmplitude = amp

		return nil
	}
}

// WithLimit enables or disables clamping to the word range (default true).
func WithLimit(enabled bool) Option {
	return func(cfg *config) error {
		cfg.limit = enabled
		return nil
	}
}

// WithPreset selects a FIR noise-shaping preset (default [Preset9FC]).
func WithPreset(p Preset) Option {
	return func(cfg *config) error {
		if !p.Valid() {
			return fmt.Errorf("dither: invalid preset: %d", p)
		}

		cfg.preset = p

		return nil
	}
}

// WithNoiseShaper overrides the preset with a custom [NoiseShaper].
func WithNoiseShaper(ns NoiseShaper) Option {
	return func(cfg *config) error {
		cfg.shaper = ns
		return nil
	}
}

// WithSource sets the noise source, for reproducible exports.
func WithSource(src Source) Option {
	return func(cfg *config) error {
		cfg.source = src
		return nil
	}
}
