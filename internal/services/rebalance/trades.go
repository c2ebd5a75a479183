package rebalance

import (
	"math"
	"sort"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

// Trade rationale thresholds on year change
const (
	stopLossChangePct   = -20
	profitTakeChangePct = 50
	steadyAddChangePct  = 30
	dipBuyChangePct     = -10
)

// buildTrades turns target-vs-current weight deltas into sized trades.
// Deltas within the trade band stay as holds. Trades the engine cannot
// size (no price, or rounding to zero shares) are dropped.
func (s *Service) buildTrades(
	snap *models.PortfolioSnapshot,
	currentWeights map[string]float64,
	targets map[string]float64,
) ([]models.TradeSuggestion, []models.HoldPosition) {
	trades := []models.TradeSuggestion{}
	holds := []models.HoldPosition{}

	for _, h := range snap.Holdings {
		current := currentWeights[h.Symbol]
		diff := targets[h.Symbol] - current

		if math.Abs(diff) <= s.tuning.TradeBandPct {
			holds = append(holds, models.HoldPosition{
				Symbol:        h.Symbol,
				Name:          h.Name,
				CurrentWeight: current,
				Reason:        "within target range",
			})
			continue
		}

		price := h.UnitPrice()
		if price <= 0 {
			holds = append(holds, models.HoldPosition{
				Symbol:        h.Symbol,
				Name:          h.Name,
				CurrentWeight: current,
				Reason:        "no price available to size trade",
			})
			continue
		}

		diffValue := snap.TotalValue * diff / 100
		shares := int64(math.Round(math.Abs(diffValue) / price))
		if shares == 0 {
			continue
		}

		action := models.TradeActionBuy
		if diff < 0 {
			action = models.TradeActionSell
		}

		priority := models.PriorityMedium
		if math.Abs(diff) > s.tuning.HighPriorityBandPct {
			priority = models.PriorityHigh
		}

		trades = append(trades, models.TradeSuggestion{
			Symbol:         h.Symbol,
			Name:           h.Name,
			Action:         action,
			Shares:         shares,
			EstimatedValue: float64(shares) * price,
			Reason:         tradeReason(action, h.Change()),
			Priority:       priority,
		})
	}

	// High priority first; stable, so holdings order is preserved within
	// a tier
	sort.SliceStable(trades, func(i, j int) bool {
		return priorityRank(trades[i].Priority) < priorityRank(trades[j].Priority)
	})

	return trades, holds
}

// tradeReason explains a trade from its direction and the holding's
// year change.
func tradeReason(action models.TradeAction, change float64) string {
	if action == models.TradeActionSell {
		switch {
		case change < stopLossChangePct:
			return "stop-loss on sustained decline"
		case change > profitTakeChangePct:
			return "profit-taking after a strong run"
		default:
			return "rebalance away from overweight position"
		}
	}
	switch {
	case change > 0 && change < steadyAddChangePct:
		return "steady add to a performing position"
	case change < dipBuyChangePct:
		return "buy the dip toward target weight"
	default:
		return "build toward target weight"
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
