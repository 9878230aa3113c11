package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the registry, validator, and scheduler. Structured
// error types below unwrap to these so callers can branch with errors.Is
// while still reaching the offending identifiers via errors.As.
var (
	ErrNilDescriptor     = errors.New("descriptor cannot be nil")
	ErrEmptyID           = errors.New("engine id cannot be empty")
	ErrInvalidPillar     = errors.New("unknown pillar")
	ErrNegativeInterval  = errors.New("refresh interval cannot be negative")
	ErrDuplicateID       = errors.New("duplicate engine id")
	ErrUnknownDependency = errors.New("dependency does not resolve to a known engine")
	ErrSelfDependency    = errors.New("engine depends on itself")
	ErrCycleDetected     = errors.New("cycle detected in dependency graph")
)

// DuplicateIDError reports that two descriptors share an id at load time.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateID, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// UnknownDependencyError reports a declared dependency that is absent from
// the registry.
type UnknownDependencyError struct {
	EngineID            string
	MissingDependencyID string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("%v: %s (required by %s)", ErrUnknownDependency, e.MissingDependencyID, e.EngineID)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrUnknownDependency }

// SelfDependencyError reports a descriptor that lists its own id as a
// dependency.
type SelfDependencyError struct {
	EngineID string
}

func (e *SelfDependencyError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSelfDependency, e.EngineID)
}

func (e *SelfDependencyError) Unwrap() error { return ErrSelfDependency }

// CycleError reports a dependency cycle. Members holds every id on the
// cycle, sorted, so operators can fix the catalog without re-running the
// scheduler one edge at a time.
type CycleError struct {
	Members []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCycleDetected, strings.Join(e.Members, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycleDetected }
