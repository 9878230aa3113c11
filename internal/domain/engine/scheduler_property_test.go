package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ============================================================================
// Property-Based Tests for Scheduling Invariants
// ============================================================================

// drawAcyclicRegistry generates a random registry that is acyclic by
// construction: each engine may only depend on engines generated before it.
func drawAcyclicRegistry(t *rapid.T) *Registry {
	n := rapid.IntRange(0, 30).Draw(t, "numEngines")

	descriptors := make([]*Descriptor, 0, n)
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("engine-%02d", i)

		var deps []string
		if len(ids) > 0 {
			numDeps := rapid.IntRange(0, min(len(ids), 4)).Draw(t, fmt.Sprintf("numDeps-%d", i))
			for j := 0; j < numDeps; j++ {
				dep := rapid.SampledFrom(ids).Draw(t, fmt.Sprintf("dep-%d-%d", i, j))
				deps = append(deps, dep)
			}
		}

		d, err := NewDescriptor(id).
			Pillar(Pillar(rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("pillar-%d", i)))).
			Priority(rapid.IntRange(-100, 100).Draw(t, fmt.Sprintf("priority-%d", i))).
			DependsOn(deps...).
			Build()
		if err != nil {
			t.Fatalf("build descriptor: %v", err)
		}
		descriptors = append(descriptors, d)
		ids = append(ids, id)
	}

	reg, err := Load(descriptors)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	return reg
}

// TestProperty_TierValidity verifies every dependency lands in a strictly
// earlier tier than its dependent.
func TestProperty_TierValidity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawAcyclicRegistry(t)

		plan, err := ComputeTiers(reg)
		if err != nil {
			t.Fatalf("compute tiers: %v", err)
		}

		for _, id := range reg.IDs() {
			d, _ := reg.Get(id)
			tier, ok := plan.TierOf(id)
			if !ok {
				t.Fatalf("engine %s missing from plan", id)
			}
			for _, dep := range d.Dependencies() {
				depTier, ok := plan.TierOf(dep)
				if !ok {
					t.Fatalf("dependency %s missing from plan", dep)
				}
				if depTier >= tier {
					t.Fatalf("dependency %s (tier %d) does not precede %s (tier %d)",
						dep, depTier, id, tier)
				}
			}
		}
	})
}

// TestProperty_Minimality verifies the canonical longest-path layering:
// tier(A) is exactly 1 + max(tier of deps), or 0 with no deps.
func TestProperty_Minimality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawAcyclicRegistry(t)

		plan, err := ComputeTiers(reg)
		if err != nil {
			t.Fatalf("compute tiers: %v", err)
		}

		for _, id := range reg.IDs() {
			d, _ := reg.Get(id)
			tier, _ := plan.TierOf(id)

			want := 0
			for _, dep := range d.Dependencies() {
				depTier, _ := plan.TierOf(dep)
				if depTier+1 > want {
					want = depTier + 1
				}
			}
			if tier != want {
				t.Fatalf("engine %s at tier %d, longest path says %d", id, tier, want)
			}
		}
	})
}

// TestProperty_EveryEngineInExactlyOneTier verifies the tiers are a
// disjoint partition of the registry.
func TestProperty_EveryEngineInExactlyOneTier(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawAcyclicRegistry(t)

		plan, err := ComputeTiers(reg)
		if err != nil {
			t.Fatalf("compute tiers: %v", err)
		}

		seen := make(map[string]int)
		for _, tier := range plan.Tiers() {
			for _, id := range tier {
				seen[id]++
			}
		}
		if len(seen) != reg.Len() {
			t.Fatalf("plan covers %d engines, registry has %d", len(seen), reg.Len())
		}
		for id, count := range seen {
			if count != 1 {
				t.Fatalf("engine %s appears in %d tiers", id, count)
			}
		}
	})
}

// TestProperty_Determinism verifies identical registry contents produce an
// identical partition and intra-tier ordering.
func TestProperty_Determinism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawAcyclicRegistry(t)

		first, err := ComputeTiers(reg)
		if err != nil {
			t.Fatalf("compute tiers: %v", err)
		}
		second, err := ComputeTiers(reg)
		if err != nil {
			t.Fatalf("compute tiers again: %v", err)
		}

		require.Equal(t, first.Tiers(), second.Tiers())
	})
}

// TestProperty_GroupingIndependence verifies pillar and priority changes
// never move an engine between tiers, only reorder within one.
func TestProperty_GroupingIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawAcyclicRegistry(t)

		plan, err := ComputeTiers(reg)
		if err != nil {
			t.Fatalf("compute tiers: %v", err)
		}

		// Rebuild with shuffled pillars and priorities, same dependency sets.
		reshuffled := make([]*Descriptor, 0, reg.Len())
		for i, id := range reg.IDs() {
			d, _ := reg.Get(id)
			nd, buildErr := NewDescriptor(d.ID()).
				Pillar(Pillar(rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("newPillar-%d", i)))).
				Priority(rapid.IntRange(-100, 100).Draw(t, fmt.Sprintf("newPriority-%d", i))).
				DependsOn(d.Dependencies()...).
				Build()
			if buildErr != nil {
				t.Fatalf("rebuild descriptor: %v", buildErr)
			}
			reshuffled = append(reshuffled, nd)
		}
		newReg, err := Load(reshuffled)
		if err != nil {
			t.Fatalf("reload registry: %v", err)
		}

		newPlan, err := ComputeTiers(newReg)
		if err != nil {
			t.Fatalf("compute reshuffled tiers: %v", err)
		}

		require.Equal(t, plan.NumTiers(), newPlan.NumTiers())
		for _, id := range reg.IDs() {
			before, _ := plan.TierOf(id)
			after, _ := newPlan.TierOf(id)
			if before != after {
				t.Fatalf("engine %s moved from tier %d to %d on a priority/pillar change",
					id, before, after)
			}
		}
	})
}

// TestProperty_ValidatorCleanIffResolvable verifies Validate returns a
// non-empty list exactly when some dependency is missing or self-referential.
func TestProperty_ValidatorCleanIffResolvable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		reg := drawAcyclicRegistry(t)

		// Acyclic-by-construction registries are always resolvable.
		if errs := Validate(reg); len(errs) != 0 {
			t.Fatalf("clean registry reported %d violations", len(errs))
		}

		if reg.Len() == 0 {
			return
		}

		// Poison one engine with a dangling dependency; Validate must notice.
		poisoned := make([]*Descriptor, 0, reg.Len())
		victim := rapid.SampledFrom(reg.IDs()).Draw(t, "victim")
		for _, id := range reg.IDs() {
			d, _ := reg.Get(id)
			deps := d.Dependencies()
			if id == victim {
				deps = append(deps, "no-such-engine")
			}
			nd, err := NewDescriptor(d.ID()).
				Pillar(d.Pillar()).
				Priority(d.Priority()).
				DependsOn(deps...).
				Build()
			if err != nil {
				t.Fatalf("rebuild descriptor: %v", err)
			}
			poisoned = append(poisoned, nd)
		}
		poisonedReg, err := Load(poisoned)
		if err != nil {
			t.Fatalf("reload registry: %v", err)
		}

		errs := Validate(poisonedReg)
		if len(errs) != 1 {
			t.Fatalf("poisoned registry reported %d violations, want 1", len(errs))
		}
		require.ErrorIs(t, errs[0], ErrUnknownDependency)
	})
}
