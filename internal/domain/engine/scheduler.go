package engine

import "sort"

// TierPlan is the execution-tier partition of a registry. Tier k must fully
// settle before tier k+1 starts; engines within one tier share no dependency
// path and may be computed concurrently.
type TierPlan struct {
	tiers  [][]string
	tierOf map[string]int
}

// visit states for the depth-first layering walk.
type visitState uint8

const (
	stateUnvisited visitState = iota
	stateInProgress
	stateDone
)

// ComputeTiers partitions the registry into execution tiers using memoized
// longest-path layering: an engine's tier is 0 when it has no dependencies,
// otherwise 1 + the maximum tier among them. The partition is canonical
// (minimum number of tiers) and deterministic for identical registry
// contents: ids are visited in ascending order and each tier is ordered by
// priority descending, id ascending.
//
// ComputeTiers assumes the registry already passed Validate. If it has not,
// a dangling dependency fails with UnknownDependencyError and a direct
// self-loop with SelfDependencyError rather than skipping the edge; a
// partial or silently wrong order is never produced. A transitive cycle
// returns a CycleError carrying every id on the cycle.
//
// An empty registry yields a plan with zero tiers.
func ComputeTiers(r *Registry) (*TierPlan, error) {
	states := make(map[string]visitState, r.Len())
	tierOf := make(map[string]int, r.Len())

	// path holds the ids on the current recursion stack so cycle members
	// can be reported in full, not just "a cycle exists".
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		states[id] = stateInProgress
		path = append(path, id)

		tier := 0
		for _, dep := range r.byID[id].dependencies {
			if dep == id {
				return &SelfDependencyError{EngineID: id}
			}
			if _, ok := r.byID[dep]; !ok {
				return &UnknownDependencyError{EngineID: id, MissingDependencyID: dep}
			}
			switch states[dep] {
			case stateInProgress:
				return cycleFrom(path, dep)
			case stateUnvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
			if t := tierOf[dep] + 1; t > tier {
				tier = t
			}
		}

		path = path[:len(path)-1]
		states[id] = stateDone
		tierOf[id] = tier
		return nil
	}

	for _, id := range r.ids {
		if states[id] == stateDone {
			continue
		}
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	return newTierPlan(r, tierOf), nil
}

// cycleFrom extracts the cycle members from the recursion path: everything
// from the repeated id back to the top of the stack is on the cycle.
func cycleFrom(path []string, repeated string) *CycleError {
	start := 0
	for i, id := range path {
		if id == repeated {
			start = i
			break
		}
	}
	members := make([]string, len(path)-start)
	copy(members, path[start:])
	sort.Strings(members)
	return &CycleError{Members: members}
}

// newTierPlan groups ids by tier number and fixes the intra-tier order.
func newTierPlan(r *Registry, tierOf map[string]int) *TierPlan {
	numTiers := 0
	for _, t := range tierOf {
		if t+1 > numTiers {
			numTiers = t + 1
		}
	}

	grouped := make([][]*Descriptor, numTiers)
	for id, t := range tierOf {
		grouped[t] = append(grouped[t], r.byID[id])
	}

	tiers := make([][]string, numTiers)
	for t, ds := range grouped {
		sortByPriority(ds)
		ids := make([]string, len(ds))
		for i, d := range ds {
			ids[i] = d.id
		}
		tiers[t] = ids
	}

	return &TierPlan{tiers: tiers, tierOf: tierOf}
}

// Tiers returns the ordered tier partition. The result is a copy; mutating
// it does not affect the plan.
func (p *TierPlan) Tiers() [][]string {
	out := make([][]string, len(p.tiers))
	for i, tier := range p.tiers {
		t := make([]string, len(tier))
		copy(t, tier)
		out[i] = t
	}
	return out
}

// Tier returns the ids in tier t, in execution order.
func (p *TierPlan) Tier(t int) []string {
	if t < 0 || t >= len(p.tiers) {
		return nil
	}
	out := make([]string, len(p.tiers[t]))
	copy(out, p.tiers[t])
	return out
}

// TierOf returns the tier number of id, or false if id is not in the plan.
func (p *TierPlan) TierOf(id string) (int, bool) {
	t, ok := p.tierOf[id]
	return t, ok
}

// NumTiers returns the number of tiers in the plan.
func (p *TierPlan) NumTiers() int {
	return len(p.tiers)
}

// Len returns the total number of engines across all tiers.
func (p *TierPlan) Len() int {
	return len(p.tierOf)
}
