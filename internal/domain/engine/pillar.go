package engine

// Pillar is the coarse display-grouping tag for engines. It drives UI
// grouping only and never influences tier membership.
type Pillar int

const (
	// PillarFoundation covers data-integrity and market-structure engines.
	PillarFoundation Pillar = iota
	// PillarLiquidity covers liquidity and flow engines.
	PillarLiquidity
	// PillarCredit covers credit and funding-stress engines.
	PillarCredit
	// PillarMacro covers macro and cross-asset regime engines.
	PillarMacro
	// PillarSynthesis covers composite and narrative engines built on the others.
	PillarSynthesis
)

// Valid returns true if the pillar is a known value.
func (p Pillar) Valid() bool {
	return p >= PillarFoundation && p <= PillarSynthesis
}

func (p Pillar) String() string {
	switch p {
	case PillarFoundation:
		return "foundation"
	case PillarLiquidity:
		return "liquidity"
	case PillarCredit:
		return "credit"
	case PillarMacro:
		return "macro"
	case PillarSynthesis:
		return "synthesis"
	default:
		return "unknown"
	}
}

// ParsePillar converts a pillar name back to its Pillar value.
func ParsePillar(s string) (Pillar, bool) {
	switch s {
	case "foundation":
		return PillarFoundation, true
	case "liquidity":
		return PillarLiquidity, true
	case "credit":
		return PillarCredit, true
	case "macro":
		return PillarMacro, true
	case "synthesis":
		return PillarSynthesis, true
	default:
		return 0, false
	}
}
