package coordinator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSnapshot indicates a cycle was requested before any catalog
	// snapshot was published.
	ErrNoSnapshot = errors.New("no catalog snapshot published")

	// ErrNotImplemented indicates a cataloged engine has no registered
	// compute implementation.
	ErrNotImplemented = errors.New("engine not implemented")

	// ErrUpstreamUnavailable indicates an engine was skipped because a
	// direct dependency failed or was itself skipped.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrAlreadyRunning indicates Start was called on a running coordinator.
	ErrAlreadyRunning = errors.New("coordinator already running")
)

// UpstreamUnavailableError identifies which dependency took an engine down.
type UpstreamUnavailableError struct {
	EngineID   string
	UpstreamID string
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("engine %q skipped: upstream %q unavailable", e.EngineID, e.UpstreamID)
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}
