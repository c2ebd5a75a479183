// Package rebalance implements the portfolio rebalance engine: it
// derives per-holding target weights for a chosen risk profile and
// turns the weight deltas into sized, prioritized trade suggestions.
package rebalance

import (
	"time"

	"github.com/maomaoaichibing/portfolio-advisor/internal/common"
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/scoring"
)

// riskStockChangePct marks a holding as a risk stock in the current
// analysis when its year change is below this.
const riskStockChangePct = -20

// Constraints carries caller-supplied planning constraints. Accepted for
// API compatibility; no constraint is interpreted yet.
type Constraints map[string]interface{}

// Service is the rebalance engine. It is stateless and safe for
// concurrent use; every call builds a fresh plan.
type Service struct {
	tuning common.RebalanceTuning
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a new rebalance service. A zero tuning falls back
// to the defaults.
func NewService(tuning common.RebalanceTuning, logger *common.Logger) *Service {
	if tuning == (common.RebalanceTuning{}) {
		tuning = common.DefaultRebalanceTuning()
	}
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		tuning: tuning,
		logger: logger,
		now:    time.Now,
	}
}

// Rebalance builds a trade plan moving the holdings toward the target
// weights for the given risk profile. An unknown profile defaults to
// medium. An empty portfolio is rejected with EmptyPortfolioError.
func (s *Service) Rebalance(holdings []models.Holding, profile models.RiskProfile, constraints Constraints) (*models.RebalancePlan, error) {
	_ = constraints

	snap, err := models.NewPortfolioSnapshot(holdings)
	if err != nil {
		return nil, err
	}
	if snap.IsEmpty() {
		return nil, &models.EmptyPortfolioError{}
	}

	if !profile.Valid() {
		profile = models.RiskProfileMedium
	}

	current := s.analyzeCurrent(snap)
	currentWeights := currentWeightsOf(snap)
	targets := s.computeTargetWeights(snap, currentWeights, profile)
	trades, holds := s.buildTrades(snap, currentWeights, targets)
	assessment := s.assessRisk(snap, trades)
	impact := s.estimateImpact(snap, trades)

	s.logger.Debug().
		Str("profile", string(profile)).
		Int("trades", len(trades)).
		Int("holds", len(holds)).
		Float64("turnover", assessment.TurnoverRate).
		Msg("Rebalance plan built")

	return &models.RebalancePlan{
		CurrentAnalysis: current,
		TargetRisk:      profile,
		TargetWeights:   targets,
		Trades:          trades,
		Holds:           holds,
		Strategy:        strategyFor(profile),
		RiskAssessment:  assessment,
		EstimatedImpact: impact,
		GeneratedAt:     s.now(),
	}, nil
}

// analyzeCurrent summarizes the portfolio the plan starts from
func (s *Service) analyzeCurrent(snap *models.PortfolioSnapshot) models.CurrentAnalysis {
	count := len(snap.Holdings)

	riskStocks := []string{}
	highWeight := []string{}
	for _, h := range snap.Holdings {
		if h.Change() < riskStockChangePct {
			riskStocks = append(riskStocks, h.Symbol)
		}
		if scoring.Weight(h.MarketValue(), snap.TotalValue, count) > s.tuning.MaxTargetWeightPct {
			highWeight = append(highWeight, h.Symbol)
		}
	}

	return models.CurrentAnalysis{
		TotalValue:       snap.TotalValue,
		StockCount:       count,
		AvgWeight:        100.0 / float64(count),
		RiskStocks:       riskStocks,
		HighWeightStocks: highWeight,
	}
}

// currentWeightsOf maps each symbol to its current portfolio weight
func currentWeightsOf(snap *models.PortfolioSnapshot) map[string]float64 {
	count := len(snap.Holdings)
	weights := make(map[string]float64, count)
	for _, h := range snap.Holdings {
		weights[h.Symbol] = scoring.Weight(h.MarketValue(), snap.TotalValue, count)
	}
	return weights
}
