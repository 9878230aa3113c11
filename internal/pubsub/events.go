// Package pubsub provides a generic publish/subscribe event system used to
// fan out refresh-cycle results, catalog reloads, and log entries to any
// interested consumer (dashboard transport, CLI followers, tests).
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// CycleStartedEvent fires when the coordinator begins a refresh cycle.
	CycleStartedEvent EventType = "cycle.started"
	// CycleCompletedEvent fires when every tier of a cycle has settled.
	CycleCompletedEvent EventType = "cycle.completed"
	// EngineComputedEvent fires once per engine outcome within a cycle.
	EngineComputedEvent EventType = "engine.computed"
	// CatalogReloadedEvent fires when a new catalog snapshot is published.
	CatalogReloadedEvent EventType = "catalog.reloaded"
	// CatalogRejectedEvent fires when a reload fails validation and the
	// previous snapshot stays in force.
	CatalogRejectedEvent EventType = "catalog.rejected"
	// LogEntryEvent carries a formatted log line.
	LogEntryEvent EventType = "log.entry"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
