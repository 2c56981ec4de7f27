package main

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/host"
	"github.com/cwbudde/algo-fx/plugin"
)

const bytesPerFrame = 8 // two float32 channels

// stream renders a sine through a rack and serves it as interleaved
// float32 little-endian frames. Read is called from the audio driver's
// goroutine only.
type stream struct {
	rack  *host.Rack
	amp   float64
	step  float64
	phase float64
	buf   []float32
}

func newStream(rack *host.Rack, freq, amp float64) (*stream, error) {
	if freq <= 0 || freq >= rack.SampleRate()/2 {
		return nil, errors.New("frequency must be in (0, sampleRate/2)")
	}

	return &stream{
		rack: rack,
		amp:  amp,
		step: 2 * math.Pi * freq / rack.SampleRate(),
	}, nil
}

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}

	s.buf = core.EnsureLen32(s.buf, 2*frames)
	buf := s.buf[:2*frames]

	for i := range frames {
		v := float32(s.amp * math.Sin(s.phase))
		buf[2*i] = v
		buf[2*i+1] = v

		s.phase += s.step
		if s.phase >= 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
	}

	s.rack.ProcessInterleaved(buf)

	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}

	return frames * bytesPerFrame, nil
}

// buildRack creates an activated rack running the comma-separated chain.
func buildRack(reg *plugin.Registry, chain string, settings []host.Setting, opts ...host.Option) (*host.Rack, error) {
	rack, err := host.NewRack(opts...)
	if err != nil {
		return nil, err
	}

	for label := range strings.SplitSeq(chain, ",") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		_, err := rack.AddLabel(reg, label)
		if err != nil {
			rack.Close()
			return nil, err
		}
	}

	for _, st := range settings {
		err := rack.Apply(st)
		if err != nil {
			rack.Close()
			return nil, err
		}
	}

	rack.Activate()

	return rack, nil
}
