package rebalance

import (
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/scoring"
)

// Profile adjustment thresholds: the year-change levels at which the
// low profile cuts losers and trims winners, and the high profile adds
// to momentum names, with the weight floors/ceiling each adjustment
// respects.
const (
	lossTrimChangePct    = -20
	lossTrimFloorPct     = 5
	gainTrimChangePct    = 50
	gainTrimFloorPct     = 10
	growthBoostChangePct = 30
	growthBoostCeilPct   = 25
)

// computeTargetWeights seeds each target at the current weight, applies
// the profile adjustment, caps at the maximum target weight, and
// renormalizes once so the targets sum to 100.
//
// The cap runs before the single renormalization, so a capped weight
// can land slightly above the cap afterwards. That matches the observed
// behavior this engine reproduces; iterating cap+normalize to a fixed
// point was considered and rejected.
func (s *Service) computeTargetWeights(
	snap *models.PortfolioSnapshot,
	currentWeights map[string]float64,
	profile models.RiskProfile,
) map[string]float64 {
	targets := make(map[string]float64, len(snap.Holdings))

	for _, h := range snap.Holdings {
		weight := currentWeights[h.Symbol]
		change := h.Change()

		switch profile {
		case models.RiskProfileLow:
			if change < lossTrimChangePct {
				weight = maxFloat(lossTrimFloorPct, weight*s.tuning.LossTrimMultiple)
			} else if change > gainTrimChangePct {
				weight = maxFloat(gainTrimFloorPct, weight*s.tuning.GainTrimMultiple)
			}
		case models.RiskProfileHigh:
			if change > growthBoostChangePct {
				weight = minFloat(growthBoostCeilPct, weight*s.tuning.GrowthBoostMultiple)
			}
		}

		if weight > s.tuning.MaxTargetWeightPct {
			weight = s.tuning.MaxTargetWeightPct
		}
		targets[h.Symbol] = weight
	}

	return scoring.NormalizeToHundred(targets)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
