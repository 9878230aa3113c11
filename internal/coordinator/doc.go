// Package coordinator executes engine refresh cycles against the current
// catalog snapshot.
//
// A cycle walks the snapshot's tier plan in order: every engine in tier k
// settles (computed, served from cache, skipped, or failed) before any
// engine in tier k+1 starts. Within a tier, engines run concurrently; the
// tier plan guarantees they share no dependency edges.
//
// Engines whose direct upstream failed or was skipped are skipped in turn,
// so a single bad feed degrades exactly its downstream cone and nothing
// else. Results are cached for each engine's refresh interval; an engine
// whose previous result is still fresh is not recomputed.
//
// The coordinator is built by explicit construction and injected with its
// collaborators (catalog service, indicator source, cache, event broker,
// tracer). It holds no package-level state.
package coordinator
