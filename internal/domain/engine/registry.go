package engine

import "sort"

// Registry is an immutable id -> Descriptor mapping built once by Load.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	byID map[string]*Descriptor
	ids  []string // sorted
}

// Load builds a registry from a list of descriptors. A duplicate id rejects
// the whole configuration: silent overwrite can hide a misconfiguration that
// later surfaces as a scheduling anomaly.
func Load(descriptors []*Descriptor) (*Registry, error) {
	byID := make(map[string]*Descriptor, len(descriptors))
	ids := make([]string, 0, len(descriptors))

	for _, d := range descriptors {
		if d == nil {
			return nil, ErrNilDescriptor
		}
		if _, exists := byID[d.id]; exists {
			return nil, &DuplicateIDError{ID: d.id}
		}
		byID[d.id] = d
		ids = append(ids, d.id)
	}
	sort.Strings(ids)

	return &Registry{byID: byID, ids: ids}, nil
}

// Get returns the descriptor for id, or false if it is not registered.
func (r *Registry) Get(id string) (*Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Len returns the number of registered engines.
func (r *Registry) Len() int {
	return len(r.ids)
}

// IDs returns all registered engine ids in ascending order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// AllByPillar returns the descriptors in the given pillar, ordered by
// priority descending with id ascending as the tie-break.
func (r *Registry) AllByPillar(p Pillar) []*Descriptor {
	out := make([]*Descriptor, 0)
	for _, id := range r.ids {
		if d := r.byID[id]; d.pillar == p {
			out = append(out, d)
		}
	}
	sortByPriority(out)
	return out
}

// AllByPriority returns every descriptor ordered by priority descending
// with id ascending as the tie-break.
func (r *Registry) AllByPriority() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	sortByPriority(out)
	return out
}

// sortByPriority orders descriptors by priority descending, then id
// ascending. Both accessors and the scheduler share this rule so every
// listing of the same engines comes out identical.
func sortByPriority(ds []*Descriptor) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].priority != ds[j].priority {
			return ds[i].priority > ds[j].priority
		}
		return ds[i].id < ds[j].id
	})
}
