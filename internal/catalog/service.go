package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/liquidity2/terminal/internal/domain/engine"
	"github.com/liquidity2/terminal/internal/log"
	"github.com/liquidity2/terminal/internal/pubsub"
)

// ErrCatalogRejected is the sentinel wrapped by RejectedError.
var ErrCatalogRejected = errors.New("catalog rejected")

// RejectedError reports a catalog load that failed validation or planning.
// Diagnostics holds every problem found, not just the first, so a catalog
// author can fix a file in one pass.
type RejectedError struct {
	Source      string
	Diagnostics []error
}

func (e *RejectedError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("catalog %q rejected: %s", e.Source, strings.Join(msgs, "; "))
}

// Unwrap exposes the sentinel and every diagnostic so errors.Is can match
// both ErrCatalogRejected and the underlying domain errors.
func (e *RejectedError) Unwrap() []error {
	return append([]error{ErrCatalogRejected}, e.Diagnostics...)
}

// Snapshot is an immutable published catalog: a validated registry paired
// with its tier plan. Consumers read whole snapshots and never see a
// registry without a matching plan.
type Snapshot struct {
	ID       string
	Registry *engine.Registry
	Plan     *engine.TierPlan
	Source   string
	LoadedAt time.Time
}

// ChangeEvent is the payload published on snapshot swaps and rejections.
type ChangeEvent struct {
	SnapshotID string
	Source     string
	Engines    int
	Tiers      int
	Err        error
}

// Service owns the current catalog snapshot. Loads are serialized; reads
// are lock-free through an atomic pointer so a hot reload never stalls a
// running cycle.
type Service struct {
	current atomic.Pointer[Snapshot]
	loadMu  sync.Mutex
	events  *pubsub.Broker[ChangeEvent]
}

// NewService creates a catalog service with no snapshot published yet.
func NewService(events *pubsub.Broker[ChangeEvent]) *Service {
	return &Service{events: events}
}

// Current returns the latest published snapshot, or nil if no load has
// succeeded yet.
func (s *Service) Current() *Snapshot {
	return s.current.Load()
}

// Load builds, validates, and plans a registry from the given descriptors
// and publishes it as the new current snapshot. On any failure the previous
// snapshot stays in force and the returned error carries every diagnostic.
func (s *Service) Load(descriptors []*engine.Descriptor, source string) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	snapshot, err := build(descriptors, source)
	if err != nil {
		log.Error(log.CatCatalog, "catalog load rejected", "source", source, "error", err)
		if s.events != nil {
			s.events.Publish(pubsub.CatalogRejectedEvent, ChangeEvent{Source: source, Err: err})
		}
		return nil, err
	}

	s.current.Store(snapshot)
	log.Info(log.CatCatalog, "catalog snapshot published",
		"snapshot_id", snapshot.ID,
		"source", source,
		"engines", snapshot.Registry.Len(),
		"tiers", snapshot.Plan.NumTiers())
	if s.events != nil {
		s.events.Publish(pubsub.CatalogReloadedEvent, ChangeEvent{
			SnapshotID: snapshot.ID,
			Source:     source,
			Engines:    snapshot.Registry.Len(),
			Tiers:      snapshot.Plan.NumTiers(),
		})
	}
	return snapshot, nil
}

// LoadFile loads a catalog file from disk and publishes it.
func (s *Service) LoadFile(path string) (*Snapshot, error) {
	descriptors, err := LoadFile(path)
	if err != nil {
		if s.events != nil {
			s.events.Publish(pubsub.CatalogRejectedEvent, ChangeEvent{Source: path, Err: err})
		}
		return nil, err
	}
	return s.Load(descriptors, path)
}

// LoadBuiltin publishes the catalog embedded in the binary.
func (s *Service) LoadBuiltin() (*Snapshot, error) {
	descriptors, err := Builtin()
	if err != nil {
		return nil, err
	}
	return s.Load(descriptors, SourceBuiltin)
}

// build assembles a snapshot without touching service state. Returns a
// RejectedError when registration or validation fails, or the scheduler
// error when the graph is cyclic.
func build(descriptors []*engine.Descriptor, source string) (*Snapshot, error) {
	registry, err := engine.Load(descriptors)
	if err != nil {
		return nil, &RejectedError{Source: source, Diagnostics: []error{err}}
	}

	if diags := engine.Validate(registry); len(diags) > 0 {
		return nil, &RejectedError{Source: source, Diagnostics: diags}
	}

	plan, err := engine.ComputeTiers(registry)
	if err != nil {
		return nil, &RejectedError{Source: source, Diagnostics: []error{err}}
	}

	return &Snapshot{
		ID:       uuid.NewString(),
		Registry: registry,
		Plan:     plan,
		Source:   source,
		LoadedAt: time.Now(),
	}, nil
}
