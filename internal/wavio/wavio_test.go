package wavio

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-fx/dsp/dither"
)

func plain() []dither.Option {
	return []dither.Option{
		dither.WithDitherType(dither.DitherNone),
		dither.WithPreset(dither.PresetNone),
	}
}

func TestRoundTripExact(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 16, 24, 32} {
		t.Run(strconv.Itoa(bits), func(t *testing.T) {
			t.Parallel()

			in := &Stereo{
				SampleRate: 48000,
				Left:       []float64{0, 0.5, -0.5, -1, 0.25},
				Right:      []float64{-0.25, 0, 0.125, 0.5, -0.75},
			}

			path := filepath.Join(t.TempDir(), "out.wav")
			if err := WriteFile(path, in, bits, plain()...); err != nil {
				t.Fatalf("WriteFile(%d bits) error = %v", bits, err)
			}

			out, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}

			if out.SampleRate != 48000 || out.BitDepth != bits {
				t.Fatalf("format = %d Hz / %d bit, want 48000 Hz / %d bit", out.SampleRate, out.BitDepth, bits)
			}

			if out.Frames() != len(in.Left) {
				t.Fatalf("Frames() = %d, want %d", out.Frames(), len(in.Left))
			}

			for i := range in.Left {
				if out.Left[i] != in.Left[i] || out.Right[i] != in.Right[i] {
					t.Fatalf("%d bits frame %d = (%v, %v), want (%v, %v)",
						bits, i, out.Left[i], out.Right[i], in.Left[i], in.Right[i])
				}
			}
		})
	}
}

func TestEncodeLimitsFullScale(t *testing.T) {
	t.Parallel()

	in := &Stereo{SampleRate: 44100, Left: []float64{1, 2}, Right: []float64{-1, -2}}

	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteFile(path, in, 16, plain()...); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	const top = 32767.0 / 32768.0
	for i := range 2 {
		if out.Left[i] != top {
			t.Errorf("Left[%d] = %v, want %v", i, out.Left[i], top)
		}
		if out.Right[i] != -1 {
			t.Errorf("Right[%d] = %v, want -1", i, out.Right[i])
		}
	}
}

func TestEncodeWithDitherStaysNear(t *testing.T) {
	t.Parallel()

	in := &Stereo{SampleRate: 44100, Left: make([]float64, 256), Right: make([]float64, 256)}
	for i := range in.Left {
		in.Left[i] = 0.3
		in.Right[i] = -0.3
	}

	path := filepath.Join(t.TempDir(), "dither.wav")
	err := WriteFile(path, in, 16,
		dither.WithPreset(dither.PresetNone),
		dither.WithSource(dither.NewSeededSource(7)))
	if err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	const lsb = 1.0 / 32768
	for i := range out.Left {
		if d := out.Left[i] - 0.3; d > 2*lsb || d < -2*lsb {
			t.Fatalf("Left[%d] = %v, more than 2 LSB from 0.3", i, out.Left[i])
		}
		if d := out.Right[i] + 0.3; d > 2*lsb || d < -2*lsb {
			t.Fatalf("Right[%d] = %v, more than 2 LSB from -0.3", i, out.Right[i])
		}
	}
}

func TestDecodeMonoDuplicates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mono.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, 22050, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           []int{16384, -8192, 0},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := []float64{0.5, -0.25, 0}
	for i, w := range want {
		if s.Left[i] != w || s.Right[i] != w {
			t.Errorf("frame %d = (%v, %v), want (%v, %v)", i, s.Left[i], s.Right[i], w, w)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decode(bytes.NewReader([]byte("definitely not a riff file")))
	if err == nil {
		t.Fatal("Decode() error = nil, want error")
	}
}

func TestEncodeValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := &Stereo{SampleRate: 44100, Left: []float64{0}, Right: []float64{0}}

	tests := []struct {
		name string
		s    *Stereo
		bits int
	}{
		{"bits", good, 12},
		{"length", &Stereo{SampleRate: 44100, Left: []float64{0, 0}, Right: []float64{0}}, 16},
		{"rate", &Stereo{Left: []float64{0}, Right: []float64{0}}, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := WriteFile(filepath.Join(dir, tt.name+".wav"), tt.s, tt.bits)
			if err == nil {
				t.Fatal("WriteFile() error = nil, want error")
			}
		})
	}
}
