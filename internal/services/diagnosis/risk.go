package diagnosis

import (
	"fmt"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/scoring"
)

// Risk scoring thresholds. The score accumulates from a neutral base as
// dispersion and loss signals trip each band.
const (
	riskScoreBase = 50

	volatilitySevere    = 50 // +20
	volatilityElevated  = 30 // +10
	drawdownSevere      = 80 // +20
	drawdownElevated    = 50 // +10
	negativeRatioLimit  = 0.5
	negativeRatioBump   = 10
	severeBump          = 20
	elevatedBump        = 10
	volatilityFactorMin = 40
	drawdownFactorMin   = 60
	underperformPct     = -20
)

// analyzeRisk scores portfolio risk from the dispersion of per-holding
// year changes and emits the contributing risk factors.
func (s *Service) analyzeRisk(snap *models.PortfolioSnapshot) *models.RiskReport {
	changes := make([]float64, 0, len(snap.Holdings))
	negative := 0
	underperformers := 0

	for _, h := range snap.Holdings {
		change := h.Change()
		changes = append(changes, change)
		if change < 0 {
			negative++
		}
		if change < underperformPct {
			underperformers++
		}
	}

	volatility := scoring.PopStdDev(changes)
	drawdown := scoring.Spread(changes)

	score := float64(riskScoreBase)
	switch {
	case volatility > volatilitySevere:
		score += severeBump
	case volatility > volatilityElevated:
		score += elevatedBump
	}
	switch {
	case drawdown > drawdownSevere:
		score += severeBump
	case drawdown > drawdownElevated:
		score += elevatedBump
	}
	if float64(negative)/float64(len(snap.Holdings)) > negativeRatioLimit {
		score += negativeRatioBump
	}

	factors := []models.RiskFactor{}
	if volatility > volatilityFactorMin {
		factors = append(factors, models.RiskFactor{
			Type:        "volatility",
			Level:       models.RiskBandHigh,
			Description: fmt.Sprintf("Year-change volatility %.1f indicates widely dispersed returns", volatility),
		})
	}
	if drawdown > drawdownFactorMin {
		factors = append(factors, models.RiskFactor{
			Type:        "drawdown",
			Level:       models.RiskBandHigh,
			Description: fmt.Sprintf("Best-to-worst spread of %.1f%% suggests large drawdown potential", drawdown),
		})
	}
	if underperformers > 0 {
		factors = append(factors, models.RiskFactor{
			Type:        "underperforming",
			Level:       models.RiskBandMedium,
			Description: fmt.Sprintf("%d holding(s) are down more than %.0f%% year over year", underperformers, -float64(underperformPct)),
		})
	}
	if len(snap.Holdings) < s.tuning.DiversifiedMinHoldings {
		factors = append(factors, models.RiskFactor{
			Type:        "concentration",
			Level:       models.RiskBandMedium,
			Description: fmt.Sprintf("Fewer than %d holdings provides insufficient diversification", s.tuning.DiversifiedMinHoldings),
		})
	}

	return &models.RiskReport{
		Score:              scoring.Clamp(score, 0, 100),
		Volatility:         volatility,
		EstimatedDrawdown:  drawdown,
		AvgYearChange:      scoring.Mean(changes),
		NegativeStockCount: negative,
		RiskFactors:        factors,
	}
}
