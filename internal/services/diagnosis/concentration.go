package diagnosis

import (
	"sort"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/scoring"
)

// analyzeConcentration computes per-holding weights sorted descending
// and classifies how dominated the portfolio is by its largest positions.
func (s *Service) analyzeConcentration(snap *models.PortfolioSnapshot) *models.ConcentrationReport {
	count := len(snap.Holdings)
	weights := make([]models.HoldingWeight, 0, count)

	for _, h := range snap.Holdings {
		value := h.MarketValue()
		weights = append(weights, models.HoldingWeight{
			Symbol: h.Symbol,
			Name:   h.Name,
			Value:  value,
			Weight: scoring.Weight(value, snap.TotalValue, count),
		})
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})

	topWeight := weights[0].Weight

	return &models.ConcentrationReport{
		Holdings:          weights,
		TopHolding:        weights[0].Symbol,
		Top3Concentration: topConcentration(weights, 3),
		Top5Concentration: topConcentration(weights, 5),
		ConcentrationRisk: scoring.Band(topWeight, s.tuning.ConcentrationHighPct, s.tuning.ConcentrationMediumPct),
		IsDiversified:     topWeight <= s.tuning.ConcentrationMediumPct && count >= s.tuning.DiversifiedMinHoldings,
	}
}

// topConcentration sums the weights of the n largest positions
func topConcentration(weights []models.HoldingWeight, n int) float64 {
	if n > len(weights) {
		n = len(weights)
	}
	sum := 0.0
	for _, w := range weights[:n] {
		sum += w.Weight
	}
	return sum
}
