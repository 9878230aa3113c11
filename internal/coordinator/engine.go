package coordinator

import (
	"context"
	"sync"
	"time"
)

// Value is what an engine computes: a headline score plus named components.
type Value struct {
	Score   float64
	Details map[string]float64
}

// Inputs carries everything an engine may read during Compute. Indicators
// are the raw series the engine declared in its descriptor; Upstream holds
// the settled values of its direct dependencies, keyed by engine id.
type Inputs struct {
	Indicators map[string]float64
	Upstream   map[string]Value
}

// Engine is a compute implementation bound to a cataloged engine id.
type Engine interface {
	ID() string
	Compute(ctx context.Context, in Inputs) (Value, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc struct {
	EngineID string
	Fn       func(ctx context.Context, in Inputs) (Value, error)
}

func (e EngineFunc) ID() string { return e.EngineID }

func (e EngineFunc) Compute(ctx context.Context, in Inputs) (Value, error) {
	return e.Fn(ctx, in)
}

// Outcome classifies how an engine settled within a cycle.
type Outcome int

const (
	// OutcomeComputed means the engine ran and returned a value.
	OutcomeComputed Outcome = iota
	// OutcomeCached means a still-fresh previous value was reused.
	OutcomeCached
	// OutcomeSkipped means the engine did not run because an upstream
	// was unavailable.
	OutcomeSkipped
	// OutcomeFailed means the engine ran and returned an error, had no
	// implementation, or its indicators could not be fetched.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeComputed:
		return "computed"
	case OutcomeCached:
		return "cached"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Available reports whether downstream engines may consume this outcome.
func (o Outcome) Available() bool {
	return o == OutcomeComputed || o == OutcomeCached
}

// Result records how one engine settled within a cycle.
type Result struct {
	EngineID   string
	Outcome    Outcome
	Value      Value
	Err        error
	CacheHit   bool
	Elapsed    time.Duration
	ComputedAt time.Time
}

// IndicatorSource resolves indicator names to current values.
type IndicatorSource interface {
	Fetch(ctx context.Context, names []string) (map[string]float64, error)
}

// InMemoryIndicatorSource is a mutable map-backed IndicatorSource. Missing
// names are omitted from the result rather than treated as errors; engines
// decide how to handle absent series.
type InMemoryIndicatorSource struct {
	mu     sync.RWMutex
	values map[string]float64
}

func NewInMemoryIndicatorSource() *InMemoryIndicatorSource {
	return &InMemoryIndicatorSource{values: make(map[string]float64)}
}

// Set stores or replaces an indicator value.
func (s *InMemoryIndicatorSource) Set(name string, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

func (s *InMemoryIndicatorSource) Fetch(ctx context.Context, names []string) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]float64, len(names))
	for _, name := range names {
		if v, ok := s.values[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}
