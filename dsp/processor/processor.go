package processor

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/dsp/guard"
)

var errNilKernel = errors.New("processor: nil kernel")

// Option configures a [Processor].
type Option func(*config) error

type config struct {
	mode Mode
}

// WithMode selects the pipeline stages (default [ModeDither]).
func WithMode(mode Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("processor: invalid mode: %d", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// Processor owns a kernel and the left/right dither states of one plugin
// instance. It is not safe for concurrent use.
type Processor struct {
	kernel    Kernel
	preGainer PreGainer
	mode      Mode

	left  dither.State
	right dither.State
}

// New creates a Processor around kernel. The processor must be activated
// before the first block.
func New(kernel Kernel, opts ...Option) (*Processor, error) {
	if kernel == nil {
		return nil, errNilKernel
	}

	cfg := config{mode: ModeDither}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	p := &Processor{
		kernel: kernel,
		mode:   cfg.mode,
	}
	p.preGainer, _ = kernel.(PreGainer)

	return p, nil
}

// Activate reseeds both dither generators from src and resets the kernel.
func (p *Processor) Activate(src dither.Source) {
	p.left, p.right = dither.SeedPair(src)
	p.kernel.Reset()
}

// Seeds returns the current left and right generator values.
func (p *Processor) Seeds() (uint32, uint32) {
	return p.left.Seed(), p.right.Seed()
}

// Mode returns the configured pipeline mode.
func (p *Processor) Mode() Mode { return p.mode }

// Kernel returns the wrapped kernel.
func (p *Processor) Kernel() Kernel { return p.kernel }

// Process runs frames frames from the input buffers into the output
// buffers. frames is clamped to the shortest buffer. Input and output
// buffers may alias.
func (p *Processor) Process(inL, inR, outL, outR []float32, frames int) {
	frames = min(frames, len(inL), len(inR), len(outL), len(outR))
	if frames <= 0 {
		return
	}

	gain := 1.0
	if p.preGainer != nil {
		gain = p.preGainer.PreGain()
	}

	switch p.mode {
	case ModeDither:
		p.processDither(inL, inR, outL, outR, frames, gain)
	case ModeGuard:
		p.processGuard(inL, inR, outL, outR, frames, gain)
	default:
		p.processRaw(inL, inR, outL, outR, frames, gain)
	}
}

func (p *Processor) processDither(inL, inR, outL, outR []float32, frames int, gain float64) {
	for i := range frames {
		l := guard.Apply(float64(inL[i]), uint32(p.left))
		r := guard.Apply(float64(inR[i]), uint32(p.right))

		if gain != 1 {
			l *= gain
			r *= gain
		}

		l, r = p.kernel.ProcessFrame(l, r)

		l = p.left.Apply(l)
		r = p.right.Apply(r)

		outL[i] = float32(l)
		outR[i] = float32(r)
	}
}

func (p *Processor) processGuard(inL, inR, outL, outR []float32, frames int, gain float64) {
	for i := range frames {
		l := guard.Apply(float64(inL[i]), uint32(p.left))
		r := guard.Apply(float64(inR[i]), uint32(p.right))

		if gain != 1 {
			l *= gain
			r *= gain
		}

		l, r = p.kernel.ProcessFrame(l, r)

		outL[i] = float32(l)
		outR[i] = float32(r)
	}
}

func (p *Processor) processRaw(inL, inR, outL, outR []float32, frames int, gain float64) {
	for i := range frames {
		l := float64(inL[i])
		r := float64(inR[i])

		if gain != 1 {
			l *= gain
			r *= gain
		}

		l, r = p.kernel.ProcessFrame(l, r)

		outL[i] = float32(l)
		outR[i] = float32(r)
	}
}
