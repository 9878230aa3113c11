package presentation

import (
	"github.com/liquidity2/terminal/internal/catalog"
	"github.com/liquidity2/terminal/internal/domain/engine"
)

// EngineDTO represents a cataloged engine for presentation
type EngineDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Pillar            string   `json:"pillar"`
	Priority          int      `json:"priority"`
	RefreshIntervalMS int64    `json:"refresh_interval_ms"`
	Indicators        []string `json:"indicators,omitempty"`
	DependsOn         []string `json:"depends_on"`
	Tier              int      `json:"tier"`
}

// TierDTO represents one execution tier of a plan
type TierDTO struct {
	Index   int      `json:"index"`
	Engines []string `json:"engines"`
}

// PlanDTO represents a full tier plan with its source snapshot
type PlanDTO struct {
	SnapshotID string    `json:"snapshot_id"`
	Source     string    `json:"source"`
	Engines    int       `json:"engines"`
	Tiers      []TierDTO `json:"tiers"`
}

// FromDescriptor converts a domain descriptor to a DTO. The tier comes from
// the snapshot's plan so listings show where each engine runs.
func FromDescriptor(desc *engine.Descriptor, plan *engine.TierPlan) EngineDTO {
	tier := -1
	if plan != nil {
		if t, ok := plan.TierOf(desc.ID()); ok {
			tier = t
		}
	}

	return EngineDTO{
		ID:                desc.ID(),
		Name:              desc.Name(),
		Pillar:            desc.Pillar().String(),
		Priority:          desc.Priority(),
		RefreshIntervalMS: desc.RefreshInterval().Milliseconds(),
		Indicators:        desc.Indicators(),
		DependsOn:         desc.Dependencies(),
		Tier:              tier,
	}
}

// FromDescriptors converts a slice of descriptors to DTOs
func FromDescriptors(descriptors []*engine.Descriptor, plan *engine.TierPlan) []EngineDTO {
	dtos := make([]EngineDTO, len(descriptors))
	for i, desc := range descriptors {
		dtos[i] = FromDescriptor(desc, plan)
	}
	return dtos
}

// FromSnapshot converts a catalog snapshot's tier plan to a DTO
func FromSnapshot(snapshot *catalog.Snapshot) PlanDTO {
	tiers := make([]TierDTO, snapshot.Plan.NumTiers())
	for i, ids := range snapshot.Plan.Tiers() {
		tiers[i] = TierDTO{Index: i, Engines: ids}
	}

	return PlanDTO{
		SnapshotID: snapshot.ID,
		Source:     snapshot.Source,
		Engines:    snapshot.Registry.Len(),
		Tiers:      tiers,
	}
}
