package rebalance

import (
	"fmt"

	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
	"github.com/maomaoaichibing/portfolio-advisor/internal/scoring"
)

// manyChangesLimit is the high-priority trade count above which the plan
// carries a many_changes warning.
const manyChangesLimit = 3

// liquidationShareRatio treats a sell covering this fraction of the
// position as a full liquidation when projecting the post-trade count.
const liquidationShareRatio = 0.99

// assessRisk estimates how disruptive executing the plan would be.
// Turnover is the average of sell and buy totals over portfolio value.
func (s *Service) assessRisk(snap *models.PortfolioSnapshot, trades []models.TradeSuggestion) models.RiskAssessment {
	sellValue, buyValue := 0.0, 0.0
	sellCount, buyCount := 0, 0
	highPriority := 0

	for _, t := range trades {
		if t.Action == models.TradeActionSell {
			sellValue += t.EstimatedValue
			sellCount++
		} else {
			buyValue += t.EstimatedValue
			buyCount++
		}
		if t.Priority == models.PriorityHigh {
			highPriority++
		}
	}

	turnover := 0.0
	if snap.TotalValue > 0 {
		turnover = (sellValue + buyValue) / 2 / snap.TotalValue * 100
	}

	warnings := []models.PlanWarning{}
	if turnover > s.tuning.TurnoverHighPct {
		warnings = append(warnings, models.PlanWarning{
			Type:    "high_turnover",
			Message: fmt.Sprintf("Turnover of %.1f%% will incur significant transaction costs", turnover),
		})
	}
	if highPriority > manyChangesLimit {
		warnings = append(warnings, models.PlanWarning{
			Type:    "many_changes",
			Message: fmt.Sprintf("%d high-priority trades reshape the portfolio substantially; consider staging them", highPriority),
		})
	}

	return models.RiskAssessment{
		TurnoverRate:   turnover,
		RiskLevel:      scoring.Band(turnover, s.tuning.TurnoverHighPct, s.tuning.TurnoverMediumPct),
		SellCount:      sellCount,
		BuyCount:       buyCount,
		TotalSellValue: sellValue,
		TotalBuyValue:  buyValue,
		Warnings:       warnings,
	}
}

// estimateImpact approximates cash flow and cost effects of the plan
func (s *Service) estimateImpact(snap *models.PortfolioSnapshot, trades []models.TradeSuggestion) models.EstimatedImpact {
	sellValue, buyValue := 0.0, 0.0
	for _, t := range trades {
		if t.Action == models.TradeActionSell {
			sellValue += t.EstimatedValue
		} else {
			buyValue += t.EstimatedValue
		}
	}

	sharesBySymbol := make(map[string]float64, len(snap.Holdings))
	for _, h := range snap.Holdings {
		sharesBySymbol[h.Symbol] = h.Shares
	}

	// Project the post-trade holding count by treating near-total sells
	// as liquidations. Trades always reference existing holdings today;
	// if buys of new symbols are ever introduced this projection will
	// undercount them.
	newCount := len(snap.Holdings)
	for _, t := range trades {
		if t.Action != models.TradeActionSell {
			continue
		}
		held, ok := sharesBySymbol[t.Symbol]
		if !ok || held <= 0 {
			continue
		}
		if float64(t.Shares)/held >= liquidationShareRatio {
			newCount--
		}
	}

	return models.EstimatedImpact{
		TotalSellValue:  sellValue,
		TotalBuyValue:   buyValue,
		TransactionCost: (sellValue + buyValue) * s.tuning.TransactionCostRate,
		NetCashFlow:     sellValue - buyValue,
		NewStockCount:   newCount,
	}
}
