package rebalance

import (
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

// strategyFor returns the static policy descriptor for a risk profile.
// Descriptors are selected, never computed.
func strategyFor(profile models.RiskProfile) models.StrategyDescriptor {
	switch profile {
	case models.RiskProfileLow:
		return models.StrategyDescriptor{
			Name:        "Stability-first",
			Description: "Protect capital by cutting losers early and realizing gains on large winners",
			Actions: []string{
				"Shrink positions down more than 20% year over year",
				"Take partial profits on positions up more than 50%",
				"Keep every position at or below 30% of the portfolio",
			},
		}
	case models.RiskProfileHigh:
		return models.StrategyDescriptor{
			Name:        "Growth-oriented",
			Description: "Lean into momentum by adding to the strongest performers",
			Actions: []string{
				"Add to positions up more than 30% year over year",
				"Accept wider position swings in pursuit of growth",
				"Cap single-position boosts at 25% before rebalancing",
			},
		}
	default:
		return models.StrategyDescriptor{
			Name:        "Balanced",
			Description: "Hold current allocations and trade only meaningful weight drift",
			Actions: []string{
				"Keep target weights at current levels",
				"Trade only drifts beyond the 5% band",
				"Review the allocation at the next diagnosis",
			},
		}
	}
}
