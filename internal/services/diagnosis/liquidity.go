package diagnosis

import (
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

// analyzeLiquidity flags positions whose share count is outsized
// relative to the portfolio average. Large blocks are slower to unwind,
// so any flagged position lifts liquidity risk to medium.
func (s *Service) analyzeLiquidity(snap *models.PortfolioSnapshot) *models.LiquidityReport {
	totalShares := 0.0
	for _, h := range snap.Holdings {
		totalShares += h.Shares
	}
	average := totalShares / float64(len(snap.Holdings))

	var large []string
	for _, h := range snap.Holdings {
		if h.Shares > s.tuning.LargePositionMultiple*average {
			large = append(large, h.Symbol)
		}
	}

	risk := models.RiskBandLow
	if len(large) > 0 {
		risk = models.RiskBandMedium
	}

	return &models.LiquidityReport{
		TotalShares:        totalShares,
		AveragePosition:    average,
		LargePositionCount: len(large),
		LargePositions:     large,
		LiquidityRisk:      risk,
	}
}
