package rebalance

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maomaoaichibing/portfolio-advisor/internal/common"
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

func fptr(v float64) *float64 { return &v }

func newTestService() *Service {
	svc := NewService(common.DefaultRebalanceTuning(), common.NewSilentLogger())
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func mustSnapshot(t *testing.T, holdings []models.Holding) *models.PortfolioSnapshot {
	t.Helper()
	snap, err := models.NewPortfolioSnapshot(holdings)
	require.NoError(t, err)
	return snap
}

func targetSum(targets map[string]float64) float64 {
	sum := 0.0
	for _, w := range targets {
		sum += w
	}
	return sum
}

func TestRebalance_EmptyPortfolioRejected(t *testing.T) {
	_, err := newTestService().Rebalance(nil, models.RiskProfileMedium, nil)
	var empty *models.EmptyPortfolioError
	require.True(t, errors.As(err, &empty), "expected EmptyPortfolioError, got %v", err)
}

func TestRebalance_MalformedHoldingRejected(t *testing.T) {
	_, err := newTestService().Rebalance([]models.Holding{
		{Symbol: "", Shares: 10, Price: fptr(10)},
	}, models.RiskProfileMedium, nil)
	var invalid *models.InvalidPortfolioError
	require.True(t, errors.As(err, &invalid), "expected InvalidPortfolioError, got %v", err)
}

func TestRebalance_UnknownProfileDefaultsToMedium(t *testing.T) {
	plan, err := newTestService().Rebalance([]models.Holding{
		{Symbol: "600519", Shares: 100, Price: fptr(10)},
	}, "aggressive", nil)
	require.NoError(t, err)

	assert.Equal(t, models.RiskProfileMedium, plan.TargetRisk)
	assert.Equal(t, "Balanced", plan.Strategy.Name)
}

func TestRebalance_TargetWeightsAlwaysSumToHundred(t *testing.T) {
	portfolios := map[string][]models.Holding{
		"single": {
			{Symbol: "600519", Shares: 100, Price: fptr(1700)},
		},
		"loser heavy, low profile input": {
			{Symbol: "600519", Shares: 40, Price: fptr(100), YearChange: fptr(-25)},
			{Symbol: "000001", Shares: 30, Price: fptr(100)},
			{Symbol: "300750", Shares: 30, Price: fptr(100)},
		},
		"winner heavy": {
			{Symbol: "600519", Shares: 90, Price: fptr(100), YearChange: fptr(70)},
			{Symbol: "000001", Shares: 10, Price: fptr(100), YearChange: fptr(-40)},
		},
	}

	for name, holdings := range portfolios {
		for _, profile := range []models.RiskProfile{models.RiskProfileLow, models.RiskProfileMedium, models.RiskProfileHigh} {
			plan, err := newTestService().Rebalance(holdings, profile, nil)
			require.NoError(t, err, "%s/%s", name, profile)
			assert.InDelta(t, 100.0, targetSum(plan.TargetWeights), 0.01, "%s/%s", name, profile)
		}
	}
}

// Low profile with a 40% position down 25%: pre-normalization target is
// max(5, 40x0.7) = 28, and the single renormalization spreads the freed
// weight across the remaining names.
func TestRebalance_LowProfileTrimsLoser(t *testing.T) {
	plan, err := newTestService().Rebalance([]models.Holding{
		{Symbol: "600519", Shares: 40, Price: fptr(100), YearChange: fptr(-25)},
		{Symbol: "000001", Shares: 30, Price: fptr(100)},
		{Symbol: "300750", Shares: 30, Price: fptr(100)},
	}, models.RiskProfileLow, nil)
	require.NoError(t, err)

	// 28 / (28+30+30) x 100
	assert.InDelta(t, 31.818, plan.TargetWeights["600519"], 0.001)
	assert.InDelta(t, 100.0, targetSum(plan.TargetWeights), 0.01)
}

func TestRebalance_CurrentAnalysis(t *testing.T) {
	plan, err := newTestService().Rebalance([]models.Holding{
		{Symbol: "600519", Shares: 70, Price: fptr(100), YearChange: fptr(-30)},
		{Symbol: "000001", Shares: 20, Price: fptr(100)},
		{Symbol: "300750", Shares: 10, Price: fptr(100), YearChange: fptr(12)},
	}, models.RiskProfileMedium, nil)
	require.NoError(t, err)

	analysis := plan.CurrentAnalysis
	assert.Equal(t, 10000.0, analysis.TotalValue)
	assert.Equal(t, 3, analysis.StockCount)
	assert.InDelta(t, 100.0/3, analysis.AvgWeight, 1e-9)
	assert.Equal(t, []string{"600519"}, analysis.RiskStocks)
	assert.Equal(t, []string{"600519"}, analysis.HighWeightStocks)
}

func TestRebalance_DriftProducesPrioritizedTrades(t *testing.T) {
	// 75/25 split: the oversized position is capped to 30 and
	// renormalized to ~54.5, a ~20.5 point sell; the other side buys in
	plan, err := newTestService().Rebalance([]models.Holding{
		{Symbol: "600519", Shares: 75, Price: fptr(100)},
		{Symbol: "000001", Shares: 25, Price: fptr(100)},
	}, models.RiskProfileMedium, nil)
	require.NoError(t, err)

	require.Len(t, plan.Trades, 2)
	assert.Empty(t, plan.Holds)

	sell := plan.Trades[0]
	assert.Equal(t, "600519", sell.Symbol)
	assert.Equal(t, models.TradeActionSell, sell.Action)
	assert.Equal(t, models.PriorityHigh, sell.Priority)
	assert.Equal(t, int64(20), sell.Shares)
	assert.Equal(t, 2000.0, sell.EstimatedValue)
	assert.Equal(t, "rebalance away from overweight position", sell.Reason)

	buy := plan.Trades[1]
	assert.Equal(t, "000001", buy.Symbol)
	assert.Equal(t, models.TradeActionBuy, buy.Action)
	assert.Equal(t, models.PriorityHigh, buy.Priority)
}

func TestRebalance_BalancedPortfolioHoldsEverything(t *testing.T) {
	plan, err := newTestService().Rebalance([]models.Holding{
		{Symbol: "600519", Shares: 25, Price: fptr(100)},
		{Symbol: "000001", Shares: 25, Price: fptr(100)},
		{Symbol: "300750", Shares: 25, Price: fptr(100)},
		{Symbol: "688111", Shares: 25, Price: fptr(100)},
	}, models.RiskProfileMedium, nil)
	require.NoError(t, err)

	assert.Empty(t, plan.Trades)
	require.Len(t, plan.Holds, 4)
	for _, h := range plan.Holds {
		assert.Equal(t, "within target range", h.Reason)
		assert.InDelta(t, 25.0, h.CurrentWeight, 1e-9)
	}
	assert.Equal(t, models.RiskBandLow, plan.RiskAssessment.RiskLevel)
	assert.Zero(t, plan.EstimatedImpact.TransactionCost)
	assert.Equal(t, 4, plan.EstimatedImpact.NewStockCount)
}

func TestRebalance_Deterministic(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "600519", Shares: 70, Price: fptr(100), YearChange: fptr(-30)},
		{Symbol: "000001", Shares: 20, Price: fptr(100), YearChange: fptr(55)},
		{Symbol: "300750", Shares: 10, Price: fptr(100), YearChange: fptr(12)},
	}

	svc := newTestService()
	first, err := svc.Rebalance(holdings, models.RiskProfileLow, nil)
	require.NoError(t, err)
	second, err := svc.Rebalance(holdings, models.RiskProfileLow, nil)
	require.NoError(t, err)

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical plans for identical input")
	}
}

func TestRebalance_StrategyDescriptors(t *testing.T) {
	holdings := []models.Holding{{Symbol: "600519", Shares: 100, Price: fptr(10)}}

	cases := map[models.RiskProfile]string{
		models.RiskProfileLow:    "Stability-first",
		models.RiskProfileMedium: "Balanced",
		models.RiskProfileHigh:   "Growth-oriented",
	}
	for profile, name := range cases {
		plan, err := newTestService().Rebalance(holdings, profile, nil)
		require.NoError(t, err)
		assert.Equal(t, name, plan.Strategy.Name)
		assert.NotEmpty(t, plan.Strategy.Description)
		assert.Len(t, plan.Strategy.Actions, 3)
	}
}
