// Package engine implements the domain layer for the engine computation graph.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines the Descriptor value type and the Pillar grouping tag
//   - Implements domain logic (registry lookup, dependency validation,
//     longest-path tier layering, cycle detection)
//   - Has no knowledge of infrastructure concerns (file I/O, YAML parsing, tracing)
//
// # Core Types
//
// Descriptor is the static metadata for one computation engine: identifier,
// display name, pillar, priority, refresh interval, required indicators, and
// upstream engine dependencies. Use NewDescriptor for construction; a built
// Descriptor is immutable.
//
// Registry is an immutable id -> Descriptor mapping built once by Load. It
// rejects duplicate identifiers outright rather than overwriting, so a
// misconfigured catalog fails at startup instead of surfacing later as a
// scheduling anomaly.
//
// Validate reports every unknown or self-referential dependency in a
// registry. It returns the full list of problems in one pass so operators
// see complete diagnostics, not just the first failure.
//
// ComputeTiers partitions a validated registry into execution tiers using
// memoized longest-path layering: an engine's tier is zero when it has no
// dependencies, otherwise one more than the highest tier among them. Every
// dependency therefore lands in a strictly earlier tier, the partition uses
// the minimum possible number of tiers, and the output is deterministic for
// identical registry contents.
//
// # Scheduling Contract
//
// TierPlan is the only scheduling output consumers need: tier k must fully
// settle before tier k+1 starts, and engines within one tier are independent
// by construction and safe to compute concurrently. How a caller parallelizes
// within a tier is its own concern.
package engine
