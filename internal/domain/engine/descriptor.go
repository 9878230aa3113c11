package engine

import (
	"sort"
	"time"
)

// Descriptor is the static metadata for one computation engine. Immutable
// after Build; accessor methods return defensive copies of slice fields.
type Descriptor struct {
	id              string        // globally unique, stable identifier
	name            string        // display name, no uniqueness constraint
	pillar          Pillar        // display grouping tag, irrelevant to scheduling
	priority        int           // intra-tier ordering hint, higher runs first
	refreshInterval time.Duration // how often the coordinator recomputes this engine
	indicators      []string      // external inputs, opaque to the scheduler; sorted, deduped
	dependencies    []string      // upstream engine ids; sorted, deduped
}

// ID returns the engine's unique identifier.
func (d *Descriptor) ID() string {
	return d.id
}

// Name returns the engine's display name.
func (d *Descriptor) Name() string {
	return d.name
}

// Pillar returns the engine's display-grouping pillar.
func (d *Descriptor) Pillar() Pillar {
	return d.pillar
}

// Priority returns the intra-tier ordering hint. Priority never affects
// tier membership, only ordering within a tier.
func (d *Descriptor) Priority() int {
	return d.priority
}

// RefreshInterval returns how often the engine should be recomputed. The
// scheduler does not enforce it; the coordinator consumes it.
func (d *Descriptor) RefreshInterval() time.Duration {
	return d.refreshInterval
}

// Indicators returns the external input identifiers this engine needs.
func (d *Descriptor) Indicators() []string {
	out := make([]string, len(d.indicators))
	copy(out, d.indicators)
	return out
}

// Dependencies returns the ids of engines that must be computed before this one.
func (d *Descriptor) Dependencies() []string {
	out := make([]string, len(d.dependencies))
	copy(out, d.dependencies)
	return out
}

// DependsOn reports whether id is a declared dependency of this engine.
func (d *Descriptor) DependsOn(id string) bool {
	i := sort.SearchStrings(d.dependencies, id)
	return i < len(d.dependencies) && d.dependencies[i] == id
}

// DescriptorBuilder provides a fluent API for creating descriptors.
type DescriptorBuilder struct {
	id              string
	name            string
	pillar          Pillar
	priority        int
	refreshInterval time.Duration
	indicators      []string
	dependencies    []string
}

// NewDescriptor creates a builder for an engine descriptor with the given id.
func NewDescriptor(id string) *DescriptorBuilder {
	return &DescriptorBuilder{id: id}
}

// Name sets the human-readable display name.
func (b *DescriptorBuilder) Name(n string) *DescriptorBuilder {
	b.name = n
	return b
}

// Pillar sets the display-grouping pillar.
func (b *DescriptorBuilder) Pillar(p Pillar) *DescriptorBuilder {
	b.pillar = p
	return b
}

// Priority sets the intra-tier ordering hint (higher runs first).
func (b *DescriptorBuilder) Priority(p int) *DescriptorBuilder {
	b.priority = p
	return b
}

// RefreshInterval sets how often the engine should be recomputed.
func (b *DescriptorBuilder) RefreshInterval(d time.Duration) *DescriptorBuilder {
	b.refreshInterval = d
	return b
}

// Indicators adds required indicator identifiers.
func (b *DescriptorBuilder) Indicators(ids ...string) *DescriptorBuilder {
	b.indicators = append(b.indicators, ids...)
	return b
}

// DependsOn adds upstream engine dependencies.
func (b *DescriptorBuilder) DependsOn(ids ...string) *DescriptorBuilder {
	b.dependencies = append(b.dependencies, ids...)
	return b
}

// Build validates required fields and returns an immutable Descriptor.
func (b *DescriptorBuilder) Build() (*Descriptor, error) {
	if b.id == "" {
		return nil, ErrEmptyID
	}
	if !b.pillar.Valid() {
		return nil, &descriptorError{id: b.id, err: ErrInvalidPillar}
	}
	if b.refreshInterval < 0 {
		return nil, &descriptorError{id: b.id, err: ErrNegativeInterval}
	}

	name := b.name
	if name == "" {
		name = b.id
	}

	return &Descriptor{
		id:              b.id,
		name:            name,
		pillar:          b.pillar,
		priority:        b.priority,
		refreshInterval: b.refreshInterval,
		indicators:      sortedSet(b.indicators),
		dependencies:    sortedSet(b.dependencies),
	}, nil
}

// descriptorError attaches the engine id to a builder validation failure.
type descriptorError struct {
	id  string
	err error
}

func (e *descriptorError) Error() string {
	return "engine " + e.id + ": " + e.err.Error()
}

func (e *descriptorError) Unwrap() error { return e.err }

// sortedSet sorts and dedupes string entries, dropping empties.
func sortedSet(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
