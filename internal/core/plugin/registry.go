package plugin

import (
	"fmt"
	"sort"
)

// Registry is an immutable, position-ordered snapshot of all known descriptors.
// Operations that change descriptors return a new Registry; the receiver is
// never modified, so readers holding a snapshot always see a consistent list.
type Registry struct {
	descriptors []Descriptor
	index       map[string]int
}

// Stats summarises the registry for the panel header
type Stats struct {
	Total             int              `json:"total"`
	Enabled           int              `json:"enabled"`
	EnabledByCategory map[Category]int `json:"enabled_by_category"`
}

// NewRegistry validates a seed and builds a registry from it.
// Seeds are ordered by declared position (ties keep seed order) and renumbered
// so positions are exactly 0..N-1.
func NewRegistry(seed []Descriptor) (Registry, error) {
	descs := make([]Descriptor, len(seed))
	copy(descs, seed)

	seen := make(map[string]bool, len(descs))
	for i, d := range descs {
		if err := d.Validate(); err != nil {
			return Registry{}, err
		}
		if seen[d.ID] {
			return Registry{}, fmt.Errorf("%w: %s", ErrDuplicatePluginID, d.ID)
		}
		seen[d.ID] = true
		descs[i] = d.normalized()
	}

	sort.SliceStable(descs, func(i, j int) bool {
		return descs[i].Position < descs[j].Position
	})

	return newOrdered(descs), nil
}

// MustNewRegistry is NewRegistry for static seeds known to be valid
func MustNewRegistry(seed []Descriptor) Registry {
	reg, err := NewRegistry(seed)
	if err != nil {
		panic(err)
	}
	return reg
}

// FromOrdered builds a registry from a list already in display order and
// reassigns position = index. Callers own descs afterwards only as a copy.
func FromOrdered(descs []Descriptor) Registry {
	cp := make([]Descriptor, len(descs))
	copy(cp, descs)
	return newOrdered(cp)
}

func newOrdered(descs []Descriptor) Registry {
	index := make(map[string]int, len(descs))
	for i := range descs {
		descs[i].Position = i
		index[descs[i].ID] = i
	}
	return Registry{descriptors: descs, index: index}
}

// Len returns the number of descriptors
func (r Registry) Len() int {
	return len(r.descriptors)
}

// Descriptors returns a copy of all descriptors in ascending position order
func (r Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Find looks a descriptor up by id
func (r Registry) Find(id string) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// IndexOf returns the position of id, or -1
func (r Registry) IndexOf(id string) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// IsEnabled reports whether id exists and is enabled
func (r Registry) IsEnabled(id string) bool {
	d, ok := r.Find(id)
	return ok && d.Enabled
}

// Enabled returns the enabled descriptors in position order
func (r Registry) Enabled() []Descriptor {
	out := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}

// WithEnabled returns a copy of the registry where id has the given enabled flag
func (r Registry) WithEnabled(id string, enabled bool) (Registry, error) {
	i, ok := r.index[id]
	if !ok {
		return r, ErrUnknown(id)
	}
	descs := r.Descriptors()
	descs[i].Enabled = enabled
	return Registry{descriptors: descs, index: r.index}, nil
}

// Stats computes enabled/total counters
func (r Registry) Stats() Stats {
	stats := Stats{
		Total:             len(r.descriptors),
		EnabledByCategory: make(map[Category]int, len(Categories())),
	}
	for _, c := range Categories() {
		stats.EnabledByCategory[c] = 0
	}
	for _, d := range r.descriptors {
		if d.Enabled {
			stats.Enabled++
			stats.EnabledByCategory[d.Category]++
		}
	}
	return stats
}
