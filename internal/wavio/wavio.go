// Package wavio reads and writes PCM WAV files for offline renders.
//
// Decoded samples are normalized to [-1, +1) and returned in planar
// float64 form. Encoding runs each channel through its own
// [dither.Quantizer], so exported words carry TPDF dither and the
// selected noise-shaping preset.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-fx/dsp/dither"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xfffe
)

var (
	errInvalidFile  = errors.New("wavio: not a valid WAV file")
	errNotPCM       = errors.New("wavio: only integer PCM is supported")
	errChannelCount = errors.New("wavio: left and right must have equal length")
)

// Stereo is a two-channel signal in planar form.
type Stereo struct {
	SampleRate int
	BitDepth   int
	Left       []float64
	Right      []float64
}

// Frames returns the number of sample frames.
func (s *Stereo) Frames() int {
	return min(len(s.Left), len(s.Right))
}

// Decode reads a PCM WAV stream. Mono input is duplicated to both
// channels; channels beyond the second are ignored.
func Decode(r io.ReadSeeker) (*Stereo, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidFile, err)
		}

		return nil, errInvalidFile
	}

	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", errNotPCM, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode PCM: %w", err)
	}

	bits := int(dec.BitDepth)
	channels := int(dec.NumChans)
	frames := len(buf.Data) / channels

	s := &Stereo{
		SampleRate: int(dec.SampleRate),
		BitDepth:   bits,
		Left:       make([]float64, frames),
		Right:      make([]float64, frames),
	}

	scale := 1 / math.Exp2(float64(bits-1))
	offset := 0
	if bits == 8 {
		offset = 128
	}

	for i := range frames {
		base := i * channels
		s.Left[i] = float64(buf.Data[base]-offset) * scale
		if channels > 1 {
			s.Right[i] = float64(buf.Data[base+1]-offset) * scale
		} else {
			s.Right[i] = s.Left[i]
		}
	}

	return s, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Stereo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Encode quantizes s to bits-bit words and writes a stereo PCM WAV
// stream. Supported depths are 8, 16, 24 and 32. opts configure the
// per-channel quantizers; the bit depth option is always taken from bits.
func Encode(w io.WriteSeeker, s *Stereo, bits int, opts ...dither.Option) error {
	switch bits {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("wavio: bit depth must be one of 8, 16, 24, 32: %d", bits)
	}

	if len(s.Left) != len(s.Right) {
		return errChannelCount
	}

	if s.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", s.SampleRate)
	}

	qopts := slices.Concat(opts, []dither.Option{dither.WithBitDepth(bits)})

	left, err := dither.NewQuantizer(qopts...)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	right, err := dither.NewQuantizer(qopts...)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	frames := len(s.Left)
	words := make([]int, 2*frames)

	offset := 0
	if bits == 8 {
		offset = 128
	}

	for i := range frames {
		words[2*i] = left.ProcessInteger(s.Left[i]) + offset
		words[2*i+1] = right.ProcessInteger(s.Right[i]) + offset
	}

	enc := wav.NewEncoder(w, s.SampleRate, bits, 2, wavFormatPCM)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: s.SampleRate},
		Data:           words,
		SourceBitDepth: bits,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write PCM: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

// WriteFile encodes s into a new file at path, replacing any existing file.
func WriteFile(path string, s *Stereo, bits int, opts ...dither.Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: %w", err)
	}

	if err := Encode(f, s, bits, opts...); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
