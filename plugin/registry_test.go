package plugin

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/algo-fx/dsp/effects"
	"github.com/cwbudde/algo-fx/dsp/processor"
)

func testDescriptor(id uint32, label string) *Descriptor {
	return &Descriptor{
		ID:    id,
		Label: label,
		Ports: stereoPorts(),
		New: func(_ Context) (Runtime, error) {
			return fixedRuntime{effects.NewDerivative()}, nil
		},
	}
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister(testDescriptor(2, "b"))
	r.MustRegister(testDescriptor(1, "a"))

	d, err := r.Lookup("b")
	if err != nil || d.ID != 2 {
		t.Fatalf("Lookup(b) = %v, %v", d, err)
	}

	d, err = r.LookupID(1)
	if err != nil || d.Label != "a" {
		t.Fatalf("LookupID(1) = %v, %v", d, err)
	}

	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownPlugin) {
		t.Fatalf("Lookup(nope) error = %v", err)
	}

	if _, err := r.LookupID(99); !errors.Is(err, ErrUnknownPlugin) {
		t.Fatalf("LookupID(99) error = %v", err)
	}

	if got := r.Descriptors(); len(got) != 2 || got[0].Label != "a" {
		t.Fatalf("Descriptors() = %v", got)
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.MustRegister(testDescriptor(1, "a"))

	if err := r.Register(testDescriptor(1, "other")); !errors.Is(err, errDuplicatePlugin) {
		t.Errorf("duplicate ID error = %v", err)
	}

	if err := r.Register(testDescriptor(7, "a")); !errors.Is(err, errDuplicatePlugin) {
		t.Errorf("duplicate label error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRegister did not panic on duplicate")
		}
	}()

	r.MustRegister(testDescriptor(1, "a"))
}

func TestDescriptorValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Descriptor)
		want   string
	}{
		{"empty label", func(d *Descriptor) { d.Label = "" }, "empty label"},
		{"nil factory", func(d *Descriptor) { d.New = nil }, "nil factory"},
		{"bad mode", func(d *Descriptor) { d.Mode = processor.Mode(12) }, "invalid mode"},
		{"missing ports", func(d *Descriptor) { d.Ports = d.Ports[:2] }, "audio ports"},
		{"port order", func(d *Descriptor) { d.Ports[0].Kind = AudioOutput }, "port 0"},
		{"audio after controls", func(d *Descriptor) {
			d.Ports = append(d.Ports, Port{Name: "x", Kind: AudioInput})
		}, "must be a control"},
		{"default out of range", func(d *Descriptor) {
			d.Ports = append(d.Ports, control("x", 0, 1, 2))
		}, "outside"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := testDescriptor(1, "x")
			tt.mutate(d)

			err := d.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}

	if err := NewRegistry().Register(nil); !errors.Is(err, ErrUnknownPlugin) {
		t.Fatalf("Register(nil) = %v", err)
	}
}

func TestDescriptorPortLookup(t *testing.T) {
	t.Parallel()

	d, err := DefaultRegistry().Lookup("softclip")
	if err != nil {
		t.Fatal(err)
	}

	if got := d.PortIndex("Drive (dB)"); got != 4 {
		t.Fatalf("PortIndex(Drive) = %d, want 4", got)
	}

	if got := d.PortIndex("missing"); got != -1 {
		t.Fatalf("PortIndex(missing) = %d, want -1", got)
	}

	if len(d.Controls()) != 1 || !d.Ports[0].IsAudio() || d.Ports[4].IsAudio() {
		t.Fatal("unexpected port layout")
	}
}
