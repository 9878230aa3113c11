package tracing

// Span attribute keys for refresh-cycle tracing.
const (
	// Cycle attributes
	AttrCycleID    = "cycle.id"
	AttrCycleTiers = "cycle.tiers"

	// Tier attributes
	AttrTierIndex = "tier.index"
	AttrTierSize  = "tier.size"

	// Engine attributes
	AttrEngineID       = "engine.id"
	AttrEnginePillar   = "engine.pillar"
	AttrEnginePriority = "engine.priority"
	AttrEngineOutcome  = "engine.outcome"
	AttrEngineCacheHit = "engine.cache_hit"

	// Catalog attributes
	AttrSnapshotID    = "catalog.snapshot_id"
	AttrCatalogSource = "catalog.source"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanCycle   = "coordinator.cycle"
	SpanTier    = "coordinator.tier"
	SpanEngine  = "coordinator.engine"
	SpanCatalog = "catalog.reload"
)
