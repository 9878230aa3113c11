package coordinator

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/liquidity2/terminal/internal/cachemanager"
	"github.com/liquidity2/terminal/internal/catalog"
	"github.com/liquidity2/terminal/internal/log"
	"github.com/liquidity2/terminal/internal/pubsub"
	"github.com/liquidity2/terminal/internal/tracing"
)

// Config tunes cycle execution.
type Config struct {
	// CycleInterval is the pause between automatic cycles in Start.
	CycleInterval time.Duration
	// EngineTimeout bounds a single engine's Compute call. Zero means
	// no per-engine deadline beyond the cycle context.
	EngineTimeout time.Duration
	// DisableCache forces recomputation every cycle.
	DisableCache bool
}

// Event is the payload published on the coordinator's broker. Report is set
// on cycle.completed, Result on engine.computed.
type Event struct {
	CycleID string
	Report  *CycleReport
	Result  *Result
}

// CycleReport summarizes one completed cycle.
type CycleReport struct {
	CycleID    string
	SnapshotID string
	Started    time.Time
	Elapsed    time.Duration
	Results    map[string]Result
}

// Deps are the coordinator's collaborators. Catalog is required; the rest
// default to working no-op or in-memory implementations when nil.
type Deps struct {
	Catalog    *catalog.Service
	Indicators IndicatorSource
	Cache      cachemanager.CacheManager[string, Result]
	Events     *pubsub.Broker[Event]
	Tracer     trace.Tracer
}

// Coordinator runs refresh cycles over the current catalog snapshot.
type Coordinator struct {
	cfg        Config
	catalog    *catalog.Service
	indicators IndicatorSource
	cache      cachemanager.CacheManager[string, Result]
	events     *pubsub.Broker[Event]
	tracer     trace.Tracer

	// results wraps cache and compute as one read-through path: a fresh
	// entry short-circuits, a miss computes and stores, an error is never
	// cached.
	results *cachemanager.ReadThroughCache[string, Result, computeJob]

	mu      sync.RWMutex
	engines map[string]Engine

	// lifecycleMu guards stop/stopOnce/done against a Stop racing a
	// concurrent Start.
	lifecycleMu sync.Mutex
	running     atomic.Bool
	stop        chan struct{}
	stopOnce    *sync.Once
	done        chan struct{}
}

// New creates a coordinator. Deps.Catalog must be non-nil.
func New(cfg Config, deps Deps) *Coordinator {
	if deps.Catalog == nil {
		panic("coordinator: Deps.Catalog is required")
	}
	if deps.Indicators == nil {
		deps.Indicators = NewInMemoryIndicatorSource()
	}
	if deps.Cache == nil {
		deps.Cache = cachemanager.NewInMemoryCacheManager[string, Result](
			"engine-results", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}
	if deps.Tracer == nil {
		deps.Tracer = noop.NewTracerProvider().Tracer("noop")
	}

	c := &Coordinator{
		cfg:        cfg,
		catalog:    deps.Catalog,
		indicators: deps.Indicators,
		cache:      deps.Cache,
		events:     deps.Events,
		tracer:     deps.Tracer,
		engines:    make(map[string]Engine),
	}
	c.results = cachemanager.NewReadThroughCache[string, Result, computeJob](
		c.cache, c.compute, cfg.DisableCache)
	return c
}

// Register binds a compute implementation to its engine id. Registering the
// same id again replaces the previous implementation.
func (c *Coordinator) Register(eng Engine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engines[eng.ID()] = eng
}

// RegisterFunc binds a plain function as the implementation for id.
func (c *Coordinator) RegisterFunc(id string, fn func(ctx context.Context, in Inputs) (Value, error)) {
	c.Register(EngineFunc{EngineID: id, Fn: fn})
}

func (c *Coordinator) engine(id string) (Engine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	eng, ok := c.engines[id]
	return eng, ok
}

// RunCycle executes one full refresh cycle against the current snapshot.
// Engine failures do not fail the cycle; they are recorded per engine in
// the report. The returned error covers cycle-level problems only.
func (c *Coordinator) RunCycle(ctx context.Context) (*CycleReport, error) {
	snapshot := c.catalog.Current()
	if snapshot == nil {
		return nil, ErrNoSnapshot
	}

	cycleID := uuid.NewString()
	started := time.Now()

	ctx, cycleSpan := c.tracer.Start(ctx, tracing.SpanCycle, trace.WithAttributes(
		attribute.String(tracing.AttrCycleID, cycleID),
		attribute.String(tracing.AttrSnapshotID, snapshot.ID),
		attribute.Int(tracing.AttrCycleTiers, snapshot.Plan.NumTiers()),
	))
	defer cycleSpan.End()

	log.Debug(log.CatCoord, "cycle started",
		"cycle_id", cycleID, "snapshot_id", snapshot.ID, "tiers", snapshot.Plan.NumTiers())
	c.publish(pubsub.CycleStartedEvent, Event{CycleID: cycleID})

	settled := make(map[string]Result, snapshot.Registry.Len())
	for tier := 0; tier < snapshot.Plan.NumTiers(); tier++ {
		if err := ctx.Err(); err != nil {
			cycleSpan.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("cycle %s aborted at tier %d: %w", cycleID, tier, err)
		}
		c.runTier(ctx, snapshot, tier, settled)
	}

	report := &CycleReport{
		CycleID:    cycleID,
		SnapshotID: snapshot.ID,
		Started:    started,
		Elapsed:    time.Since(started),
		Results:    settled,
	}

	log.Info(log.CatCoord, "cycle completed",
		"cycle_id", cycleID, "engines", len(settled), "elapsed", report.Elapsed.String())
	c.publish(pubsub.CycleCompletedEvent, Event{CycleID: cycleID, Report: report})
	return report, nil
}

// runTier settles every engine in one tier concurrently and merges the
// results into settled. Engines in a tier share no dependency edges, so
// each goroutine reads only results from earlier tiers.
func (c *Coordinator) runTier(ctx context.Context, snapshot *catalog.Snapshot, tier int, settled map[string]Result) {
	ids := snapshot.Plan.Tier(tier)

	tierCtx, tierSpan := c.tracer.Start(ctx, tracing.SpanTier, trace.WithAttributes(
		attribute.Int(tracing.AttrTierIndex, tier),
		attribute.Int(tracing.AttrTierSize, len(ids)),
	))
	defer tierSpan.End()

	results := make([]Result, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.settleEngine(tierCtx, snapshot, id, settled)
		}()
	}
	wg.Wait()

	for _, res := range results {
		settled[res.EngineID] = res
		c.publish(pubsub.EngineComputedEvent, Event{Result: &res})
	}
}

// settleEngine produces the result for one engine: a skip if an upstream is
// unavailable, a cache hit if the previous value is still fresh, otherwise
// a fresh computation.
func (c *Coordinator) settleEngine(ctx context.Context, snapshot *catalog.Snapshot, id string, settled map[string]Result) Result {
	desc, _ := snapshot.Registry.Get(id)

	ctx, span := c.tracer.Start(ctx, tracing.SpanEngine, trace.WithAttributes(
		attribute.String(tracing.AttrEngineID, id),
		attribute.String(tracing.AttrEnginePillar, desc.Pillar().String()),
		attribute.Int(tracing.AttrEnginePriority, desc.Priority()),
	))
	defer span.End()

	finish := func(res Result) Result {
		span.SetAttributes(
			attribute.String(tracing.AttrEngineOutcome, res.Outcome.String()),
			attribute.Bool(tracing.AttrEngineCacheHit, res.CacheHit),
		)
		if res.Err != nil {
			span.SetStatus(codes.Error, res.Err.Error())
			span.SetAttributes(attribute.String(tracing.AttrErrorMessage, res.Err.Error()))
		}
		return res
	}

	for _, dep := range desc.Dependencies() {
		if upstream, ok := settled[dep]; ok && !upstream.Outcome.Available() {
			log.Warn(log.CatCoord, "engine skipped", "engine_id", id, "upstream", dep)
			return finish(Result{
				EngineID:   id,
				Outcome:    OutcomeSkipped,
				Err:        &UpstreamUnavailableError{EngineID: id, UpstreamID: dep},
				ComputedAt: time.Now(),
			})
		}
	}

	var ran bool
	job := computeJob{snapshot: snapshot, id: id, settled: settled, ran: &ran}

	var res Result
	var err error
	if desc.RefreshInterval() > 0 {
		res, err = c.results.Get(ctx, id, job, desc.RefreshInterval())
	} else {
		// Zero interval means never reuse a result; go straight to the engine.
		res, err = c.compute(ctx, job)
	}
	if err != nil {
		log.ErrorErr(log.CatCoord, "engine failed", err, "engine_id", id)
		return finish(Result{
			EngineID:   id,
			Outcome:    OutcomeFailed,
			Err:        err,
			ComputedAt: time.Now(),
		})
	}
	if !ran {
		res.Outcome = OutcomeCached
		res.CacheHit = true
	}
	return finish(res)
}

// computeJob carries one engine invocation through the read-through cache.
// ran lets the caller tell a fresh computation from a cache hit.
type computeJob struct {
	snapshot *catalog.Snapshot
	id       string
	settled  map[string]Result
	ran      *bool
}

// compute runs the implementation for job.id. A returned error is recorded
// as a failed outcome by settleEngine and never cached.
func (c *Coordinator) compute(ctx context.Context, job computeJob) (Result, error) {
	if job.ran != nil {
		*job.ran = true
	}
	desc, _ := job.snapshot.Registry.Get(job.id)
	started := time.Now()

	eng, ok := c.engine(job.id)
	if !ok {
		return Result{}, fmt.Errorf("engine %q: %w", job.id, ErrNotImplemented)
	}

	if c.cfg.EngineTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.EngineTimeout)
		defer cancel()
	}

	indicators, err := c.indicators.Fetch(ctx, desc.Indicators())
	if err != nil {
		return Result{}, fmt.Errorf("engine %q: fetching indicators: %w", job.id, err)
	}

	upstream := make(map[string]Value, len(desc.Dependencies()))
	for _, dep := range desc.Dependencies() {
		if res, ok := job.settled[dep]; ok {
			upstream[dep] = res.Value
		}
	}

	value, err := eng.Compute(ctx, Inputs{Indicators: indicators, Upstream: upstream})
	if err != nil {
		return Result{}, fmt.Errorf("engine %q: %w", job.id, err)
	}

	return Result{
		EngineID:   job.id,
		Outcome:    OutcomeComputed,
		Value:      value,
		Elapsed:    time.Since(started),
		ComputedAt: time.Now(),
	}, nil
}

// Start runs cycles every CycleInterval until Stop is called or ctx is
// cancelled. It returns ErrAlreadyRunning on a second concurrent call.
func (c *Coordinator) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	c.stop = make(chan struct{})
	c.stopOnce = &sync.Once{}
	c.done = make(chan struct{})

	interval := c.cfg.CycleInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	go func() {
		defer close(c.done)
		defer c.running.Store(false)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// First cycle immediately, then on the ticker.
		for {
			if _, err := c.RunCycle(ctx); err != nil {
				log.ErrorErr(log.CatCoord, "cycle failed", err)
			}
			select {
			case <-ticker.C:
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info(log.CatCoord, "coordinator started", "interval", interval.String())
	return nil
}

// Stop halts the cycle loop and waits for the in-flight cycle to finish.
// Stopping a coordinator that is not running is a no-op.
func (c *Coordinator) Stop() {
	c.lifecycleMu.Lock()
	if !c.running.Load() {
		c.lifecycleMu.Unlock()
		return
	}
	stopOnce, stop, done := c.stopOnce, c.stop, c.done
	c.lifecycleMu.Unlock()

	stopOnce.Do(func() { close(stop) })
	<-done
	log.Info(log.CatCoord, "coordinator stopped")
}

func (c *Coordinator) publish(eventType pubsub.EventType, ev Event) {
	if c.events != nil {
		c.events.Publish(eventType, ev)
	}
}
