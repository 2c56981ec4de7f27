package host

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/dither"
	"github.com/cwbudde/algo-fx/plugin"
)

var errNoStage = errors.New("host: no matching stage")

// Option configures a [Rack].
type Option func(*rackConfig) error

type rackConfig struct {
	processor core.ProcessorConfig
	logger    *logrus.Logger
	seed      uint64
	seeded    bool
}

// WithProcessorOptions sets the sample rate and block size.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(cfg *rackConfig) error {
		cfg.processor = core.ApplyProcessorOptions(opts...)
		return nil
	}
}

// WithSeed makes every stage's dither reproducible. Stage i draws its
// seeds from a PCG seeded with seed+i.
func WithSeed(seed uint64) Option {
	return func(cfg *rackConfig) error {
		cfg.seed = seed
		cfg.seeded = true

		return nil
	}
}

// WithLogger sets the logger passed to every stage.
func WithLogger(logger *logrus.Logger) Option {
	return func(cfg *rackConfig) error {
		if logger == nil {
			return errors.New("host: nil logger")
		}

		cfg.logger = logger

		return nil
	}
}

// Stage is one plugin instance in a rack together with its control
// storage.
type Stage struct {
	inst     *plugin.Instance
	controls [][]float32
}

// Instance returns the stage's plugin instance.
func (s *Stage) Instance() *plugin.Instance { return s.inst }

// Label returns the plugin label.
func (s *Stage) Label() string { return s.inst.Descriptor().Label }

// Set assigns a control by key (see [ControlKey]).
func (s *Stage) Set(key string, value float64) error {
	key = ControlKey(key)

	for i, p := range s.inst.Descriptor().Controls() {
		if ControlKey(p.Name) == key {
			s.controls[i][0] = float32(value)
			return nil
		}
	}

	return fmt.Errorf("host: plugin %s has no control %q", s.Label(), key)
}

// Get returns the stored value of a control by key.
func (s *Stage) Get(key string) (float64, bool) {
	key = ControlKey(key)

	for i, p := range s.inst.Descriptor().Controls() {
		if ControlKey(p.Name) == key {
			return float64(s.controls[i][0]), true
		}
	}

	return 0, false
}

// Rack is an ordered chain of plugin instances sharing one block buffer.
// It is not safe for concurrent use.
type Rack struct {
	cfg    rackConfig
	log    *logrus.Entry
	stages []*Stage

	left  []float32
	right []float32

	active bool
}

// NewRack creates an empty rack. An empty rack passes audio through.
func NewRack(opts ...Option) (*Rack, error) {
	cfg := rackConfig{
		processor: core.DefaultProcessorConfig(),
		logger:    logrus.StandardLogger(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Rack{
		cfg:   cfg,
		log:   cfg.logger.WithField("component", "rack"),
		left:  make([]float32, cfg.processor.BlockSize),
		right: make([]float32, cfg.processor.BlockSize),
	}, nil
}

// SampleRate returns the rack's sample rate in Hz.
func (r *Rack) SampleRate() float64 { return r.cfg.processor.SampleRate }

// BlockSize returns the maximum frames per block.
func (r *Rack) BlockSize() int { return r.cfg.processor.BlockSize }

// Stages returns the stages in processing order.
func (r *Rack) Stages() []*Stage { return r.stages }

// Add instantiates desc at the end of the chain. A stage added to an
// active rack is activated immediately.
func (r *Rack) Add(desc *plugin.Descriptor) (*Stage, error) {
	opts := []plugin.Option{plugin.WithLogger(r.cfg.logger)}
	if r.cfg.seeded {
		src := dither.NewSeededSource(r.cfg.seed + uint64(len(r.stages)))
		opts = append(opts, plugin.WithSource(src))
	}

	inst, err := plugin.Instantiate(desc, r.cfg.processor.SampleRate, opts...)
	if err != nil {
		return nil, err
	}

	st := &Stage{inst: inst}

	buffers := [][]float32{r.left, r.right, r.left, r.right}
	for i, buf := range buffers {
		err := inst.ConnectPort(i, buf)
		if err != nil {
			inst.Cleanup()
			return nil, err
		}
	}

	for i, p := range desc.Controls() {
		c := []float32{float32(p.Hint.Default)}
		st.controls = append(st.controls, c)

		err := inst.ConnectPort(len(buffers)+i, c)
		if err != nil {
			inst.Cleanup()
			return nil, err
		}
	}

	if r.active {
		inst.Activate()
	}

	r.stages = append(r.stages, st)
	r.log.WithFields(logrus.Fields{
		"plugin": desc.Label,
		"stage":  len(r.stages) - 1,
	}).Debug("Rack stage added")

	return st, nil
}

// AddLabel looks label up in reg and adds it.
func (r *Rack) AddLabel(reg *plugin.Registry, label string) (*Stage, error) {
	desc, err := reg.Lookup(label)
	if err != nil {
		return nil, err
	}

	return r.Add(desc)
}

// Apply assigns a setting to every stage it names.
func (r *Rack) Apply(s Setting) error {
	if idx, err := strconv.Atoi(s.Stage); err == nil {
		if idx < 0 || idx >= len(r.stages) {
			return fmt.Errorf("%w: index %d", errNoStage, idx)
		}

		return r.stages[idx].Set(s.Key, s.Value)
	}

	matched := false

	for _, st := range r.stages {
		if st.Label() != s.Stage {
			continue
		}

		err := st.Set(s.Key, s.Value)
		if err != nil {
			return err
		}

		matched = true
	}

	if !matched {
		return fmt.Errorf("%w: %q", errNoStage, s.Stage)
	}

	return nil
}

// Activate activates every stage.
func (r *Rack) Activate() {
	for _, st := range r.stages {
		st.inst.Activate()
	}

	r.active = true
}

// Deactivate deactivates every stage.
func (r *Rack) Deactivate() {
	for _, st := range r.stages {
		st.inst.Deactivate()
	}

	r.active = false
}

// Close releases every stage. The rack must not be used afterwards.
func (r *Rack) Close() {
	for _, st := range r.stages {
		st.inst.Cleanup()
	}

	r.stages = nil
	r.active = false
}

// Process runs the chain over the common length of the four buffers and
// returns the number of frames written. Input and output may alias.
func (r *Rack) Process(inL, inR, outL, outR []float32) int {
	n := min(len(inL), len(inR), len(outL), len(outR))

	for off := 0; off < n; off += r.cfg.processor.BlockSize {
		frames := min(r.cfg.processor.BlockSize, n-off)

		copy(r.left, inL[off:off+frames])
		copy(r.right, inR[off:off+frames])

		for _, st := range r.stages {
			st.inst.Run(frames)
		}

		copy(outL[off:off+frames], r.left[:frames])
		copy(outR[off:off+frames], r.right[:frames])
	}

	return n
}

// ProcessPlanar runs the chain in place over double-precision channels.
// Samples are narrowed to single precision at the plugin boundary.
func (r *Rack) ProcessPlanar(left, right []float64) int {
	n := min(len(left), len(right))

	for off := 0; off < n; off += r.cfg.processor.BlockSize {
		frames := min(r.cfg.processor.BlockSize, n-off)

		core.Narrow(r.left[:frames], left[off:off+frames])
		core.Narrow(r.right[:frames], right[off:off+frames])

		for _, st := range r.stages {
			st.inst.Run(frames)
		}

		core.Widen(left[off:off+frames], r.left[:frames])
		core.Widen(right[off:off+frames], r.right[:frames])
	}

	return n
}

// ProcessInterleaved runs the chain in place over interleaved stereo
// frames (L0 R0 L1 R1 ...). A trailing odd sample is left untouched.
func (r *Rack) ProcessInterleaved(buf []float32) int {
	n := len(buf) / 2

	for off := 0; off < n; off += r.cfg.processor.BlockSize {
		frames := min(r.cfg.processor.BlockSize, n-off)

		for i := range frames {
			r.left[i] = buf[2*(off+i)]
			r.right[i] = buf[2*(off+i)+1]
		}

		for _, st := range r.stages {
			st.inst.Run(frames)
		}

		for i := range frames {
			buf[2*(off+i)] = r.left[i]
			buf[2*(off+i)+1] = r.right[i]
		}
	}

	return n
}
