package plugin

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-fx/dsp/dither"
)

// rig is an instance with bound stereo buffers and one slot per control.
type rig struct {
	inst     *Instance
	inL, inR []float32
	outL     []float32
	outR     []float32
	controls [][]float32
	hook     *logtest.Hook
}

func newRig(t *testing.T, label string, frames int, seed uint64) *rig {
	t.Helper()

	desc, err := DefaultRegistry().Lookup(label)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", label, err)
	}

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	inst, err := Instantiate(desc, 44100, WithSource(dither.NewSeededSource(seed)), WithLogger(logger))
	if err != nil {
		t.Fatalf("Instantiate(%q): %v", label, err)
	}

	r := &rig{
		inst: inst,
		inL:  make([]float32, frames),
		inR:  make([]float32, frames),
		outL: make([]float32, frames),
		outR: make([]float32, frames),
		hook: hook,
	}

	for i, buf := range [][]float32{r.inL, r.inR, r.outL, r.outR} {
		if err := inst.ConnectPort(i, buf); err != nil {
			t.Fatalf("ConnectPort(%d): %v", i, err)
		}
	}

	for i, p := range desc.Controls() {
		c := []float32{float32(p.Hint.Default)}
		r.controls = append(r.controls, c)

		if err := inst.ConnectPort(audioPortCount+i, c); err != nil {
			t.Fatalf("ConnectPort(control %d): %v", i, err)
		}
	}

	inst.Activate()

	return r
}

func (r *rig) run(frames int) { r.inst.Run(frames) }
