package plugin

import (
	"cmp"
	"fmt"
	"slices"
)

// Registry maps plugin labels and IDs to descriptors. A registry is not
// safe for concurrent registration; lookups on a fully built registry are.
type Registry struct {
	byLabel map[string]*Descriptor
	byID    map[uint32]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLabel: make(map[string]*Descriptor),
		byID:    make(map[uint32]*Descriptor),
	}
}

// Register validates desc and adds it. Labels and IDs must be unique.
func (r *Registry) Register(desc *Descriptor) error {
	if desc == nil {
		return ErrUnknownPlugin
	}

	err := desc.Validate()
	if err != nil {
		return err
	}

	if _, exists := r.byLabel[desc.Label]; exists {
		return fmt.Errorf("%w: label %s", errDuplicatePlugin, desc.Label)
	}

	if _, exists := r.byID[desc.ID]; exists {
		return fmt.Errorf("%w: id %d", errDuplicatePlugin, desc.ID)
	}

	r.byLabel[desc.Label] = desc
	r.byID[desc.ID] = desc

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(desc *Descriptor) {
	err := r.Register(desc)
	if err != nil {
		panic("plugin registry: " + err.Error())
	}
}

// Lookup returns the descriptor with the given label.
func (r *Registry) Lookup(label string) (*Descriptor, error) {
	desc, ok := r.byLabel[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, label)
	}

	return desc, nil
}

// LookupID returns the descriptor with the given unique ID.
func (r *Registry) LookupID(id uint32) (*Descriptor, error) {
	desc, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownPlugin, id)
	}

	return desc, nil
}

// Descriptors returns all descriptors sorted by ID.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b *Descriptor) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int { return len(r.byID) }
