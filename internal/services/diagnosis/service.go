// Package diagnosis implements the portfolio diagnosis engine: it scores
// a snapshot for concentration, risk, sector and liquidity issues and
// produces ranked optimization suggestions.
package diagnosis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/maomaoaichibing/portfolio-advisor/internal/common"
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/scoring"
)

// Overall score weighting. The score starts from a neutral base and is
// adjusted by each report's findings, then clamped to [0, 100].
const (
	scoreBase               = 70
	diversifiedBonus        = 10
	concentrationPenalty    = 15
	riskScoreWeight         = 0.3
	balancedSectorBonus     = 5
	sectorRiskPenalty       = 10
	liquidityPenalty        = 5
	highRiskScoreThreshold  = 70
	soundRiskScoreThreshold = 50
	severeUnderperformPct   = -30
)

// Service is the diagnosis engine. It is stateless and safe for
// concurrent use; every call builds a fresh result.
type Service struct {
	tuning common.DiagnosisTuning
	logger *common.Logger
	now    func() time.Time
}

// NewService creates a new diagnosis service. A zero tuning falls back
// to the defaults.
func NewService(tuning common.DiagnosisTuning, logger *common.Logger) *Service {
	if tuning == (common.DiagnosisTuning{}) {
		tuning = common.DefaultDiagnosisTuning()
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

// Diagnose analyzes the holdings and returns the full diagnosis result.
// Malformed holdings reject the whole call with InvalidPortfolioError.
// An empty portfolio degrades to a zero-score result rather than erroring.
func (s *Service) Diagnose(holdings []models.Holding) (*models.DiagnosisResult, error) {
	snap, err := models.NewPortfolioSnapshot(holdings)
	if err != nil {
		return nil, err
	}

	if snap.IsEmpty() {
		return &models.DiagnosisResult{
			OverallScore:  0,
			RiskLevel:     models.RiskLevelNone,
			RiskLevelText: models.RiskLevelNone.Text(),
			Message:       "no holdings",
			Suggestions:   []models.Suggestion{},
			GeneratedAt:   s.now(),
		}, nil
	}

	concentration := s.analyzeConcentration(snap)
	risk := s.analyzeRisk(snap)
	sectors := s.analyzeSectors(snap)
	liquidity := s.analyzeLiquidity(snap)

	suggestions := s.buildSuggestions(snap, concentration, risk, sectors)
	score := s.overallScore(concentration, risk, sectors, liquidity)
	level := overallRiskLevel(score, risk.Score)

	s.logger.Debug().
		Int("holdings", len(snap.Holdings)).
		Int("score", score).
		Str("risk_level", string(level)).
		Msg("Diagnosis complete")

	return &models.DiagnosisResult{
		OverallScore:       score,
		RiskLevel:          level,
		RiskLevelText:      level.Text(),
		TotalValue:         snap.TotalValue,
		StockCount:         len(snap.Holdings),
		Concentration:      concentration,
		RiskAnalysis:       risk,
		SectorDistribution: sectors,
		LiquidityAnalysis:  liquidity,
		Suggestions:        suggestions,
		GeneratedAt:        s.now(),
	}, nil
}

// buildSuggestions emits recommendations in a fixed evaluation order and
// stable-sorts them by priority, so ordering within a tier follows the
// evaluation order.
func (s *Service) buildSuggestions(
	snap *models.PortfolioSnapshot,
	concentration *models.ConcentrationReport,
	risk *models.RiskReport,
	sectors *models.SectorReport,
) []models.Suggestion {
	suggestions := []models.Suggestion{}

	if concentration.ConcentrationRisk == models.RiskBandHigh {
		suggestions = append(suggestions, models.Suggestion{
			Type:     "concentration",
			Priority: models.PriorityHigh,
			Message: fmt.Sprintf("Reduce %s to below %.0f%% of the portfolio",
				concentration.TopHolding, s.tuning.ConcentrationMediumPct),
		})
	}

	if !concentration.IsDiversified {
		suggestions = append(suggestions, models.Suggestion{
			Type:     "diversification",
			Priority: models.PriorityMedium,
			Message: fmt.Sprintf("Diversify into %d-10 holdings to spread single-stock risk",
				s.tuning.DiversifiedMinHoldings),
		})
	}

	if risk.Score > highRiskScoreThreshold {
		suggestions = append(suggestions, models.Suggestion{
			Type:     "risk",
			Priority: models.PriorityHigh,
			Message:  "Portfolio risk is elevated; reduce exposure to volatile positions",
		})
	}

	if sectors.SectorRisk == models.RiskBandHigh {
		suggestions = append(suggestions, models.Suggestion{
			Type:     "sector",
			Priority: models.PriorityMedium,
			Message:  fmt.Sprintf("Reduce the %s overweight to balance sector exposure", sectors.TopSector),
		})
	}

	var laggards []string
	for _, h := range snap.Holdings {
		if h.Change() < severeUnderperformPct {
			laggards = append(laggards, h.Symbol)
		}
	}
	if len(laggards) > 0 {
		suggestions = append(suggestions, models.Suggestion{
			Type:     "underperformers",
			Priority: models.PriorityMedium,
			Message:  fmt.Sprintf("Review underperformers: %s", strings.Join(laggards, ", ")),
		})
	}

	if concentration.IsDiversified && risk.Score < soundRiskScoreThreshold {
		suggestions = append(suggestions, models.Suggestion{
			Type:     "positive",
			Priority: models.PriorityLow,
			Message:  "Configuration is sound; keep monitoring position weights",
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return priorityRank(suggestions[i].Priority) < priorityRank(suggestions[j].Priority)
	})

	return suggestions
}

// overallScore combines the four reports into a 0-100 composite
func (s *Service) overallScore(
	concentration *models.ConcentrationReport,
	risk *models.RiskReport,
	sectors *models.SectorReport,
	liquidity *models.LiquidityReport,
) int {
	score := float64(scoreBase)

	if concentration.IsDiversified {
		score += diversifiedBonus
	}
	if concentration.ConcentrationRisk == models.RiskBandHigh {
		score -= concentrationPenalty
	}

	score -= (risk.Score - 50) * riskScoreWeight

	if sectors.IsBalanced {
		score += balancedSectorBonus
	} else if sectors.SectorRisk == models.RiskBandHigh {
		score -= sectorRiskPenalty
	}

	if liquidity.LiquidityRisk == models.RiskBandMedium {
		score -= liquidityPenalty
	}

	return int(math.Round(scoring.Clamp(score, 0, 100)))
}

// overallRiskLevel maps the composite score to a risk level, with the
// raw risk score breaking the low end into high vs very high.
func overallRiskLevel(score int, riskScore float64) models.RiskLevel {
	switch {
	case score >= 80:
		return models.RiskLevelLow
	case score >= 60:
		return models.RiskLevelMedium
	case riskScore > 80:
		return models.RiskLevelVeryHigh
	default:
		return models.RiskLevelHigh
	}
}

func priorityRank(p models.Priority) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	default:
		return 2
	}
}
