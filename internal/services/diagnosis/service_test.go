package diagnosis

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/maomaoaichibing/portfolio-advisor/internal/common"
	"github.com/maomaoaichibing/portfolio-advisor/internal/models"
)

func fptr(v float64) *float64 { return &v }

func newTestService() *Service {
	svc := NewService(common.DefaultDiagnosisTuning(), common.NewSilentLogger())
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestDiagnose_EmptyPortfolioDegradesGracefully(t *testing.T) {
	result, err := newTestService().Diagnose(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.OverallScore != 0 {
		t.Errorf("Expected score 0, got %d", result.OverallScore)
	}
	if result.RiskLevel != models.RiskLevelNone {
		t.Errorf("Expected risk level none, got %s", result.RiskLevel)
	}
	if result.Message != "no holdings" {
		t.Errorf("Expected no-holdings message, got %q", result.Message)
	}
}

func TestDiagnose_RejectsMalformedHolding(t *testing.T) {
	_, err := newTestService().Diagnose([]models.Holding{
		{Symbol: "600519", Shares: 100, Price: fptr(10)},
		{Symbol: "000001", Shares: -5, Price: fptr(10)},
	})
	var invalid *models.InvalidPortfolioError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidPortfolioError, got %v", err)
	}
	if invalid.Symbol != "000001" {
		t.Errorf("Expected offending symbol in error, got %s", invalid.Symbol)
	}
}

// Two holdings at 50/50, year changes +60/-30: concentration lands in
// the medium band (50 is not above 50), the risk score accumulates
// volatility and drawdown bumps but no negative-ratio penalty (exactly
// half negative, not more), and two holdings are not diversified.
func TestDiagnose_TwoHoldingScenario(t *testing.T) {
	result, err := newTestService().Diagnose([]models.Holding{
		{Symbol: "AAA", Shares: 100, Price: fptr(10), YearChange: fptr(60)},
		{Symbol: "BBB", Shares: 100, Price: fptr(10), YearChange: fptr(-30)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.TotalValue != 2000 {
		t.Errorf("Expected total 2000, got %f", result.TotalValue)
	}
	if result.Concentration.ConcentrationRisk != models.RiskBandMedium {
		t.Errorf("Expected medium concentration at exactly 50%%, got %s", result.Concentration.ConcentrationRisk)
	}
	if result.Concentration.IsDiversified {
		t.Error("Two holdings must not count as diversified")
	}
	for _, w := range result.Concentration.Holdings {
		if w.Weight != 50 {
			t.Errorf("Expected 50%% weight for %s, got %f", w.Symbol, w.Weight)
		}
	}

	// base 50 + volatility 45 (+10) + drawdown 90 (+20); half negative
	// is not a majority, so no +10
	if result.RiskAnalysis.Score != 80 {
		t.Errorf("Expected risk score 80, got %f", result.RiskAnalysis.Score)
	}
	if result.RiskAnalysis.NegativeStockCount != 1 {
		t.Errorf("Expected 1 negative stock, got %d", result.RiskAnalysis.NegativeStockCount)
	}

	// 70 - (80-50)*0.3 - 10 (high sector risk, single bucket) = 51
	if result.OverallScore != 51 {
		t.Errorf("Expected overall score 51, got %d", result.OverallScore)
	}
	if result.RiskLevel != models.RiskLevelHigh {
		t.Errorf("Expected high risk level, got %s", result.RiskLevel)
	}
}

func TestDiagnose_OverallScoreStaysInRange(t *testing.T) {
	portfolios := [][]models.Holding{
		{
			{Symbol: "600519", Shares: 1000, Price: fptr(1700), YearChange: fptr(-90)},
			{Symbol: "000001", Shares: 10, Price: fptr(1), YearChange: fptr(95)},
		},
		{
			{Symbol: "600519", Shares: 100, Price: fptr(10)},
			{Symbol: "000001", Shares: 100, Price: fptr(10)},
			{Symbol: "300750", Shares: 100, Price: fptr(10)},
			{Symbol: "688111", Shares: 100, Price: fptr(10)},
			{Symbol: "002594", Shares: 100, Price: fptr(10)},
		},
	}

	for i, holdings := range portfolios {
		result, err := newTestService().Diagnose(holdings)
		if err != nil {
			t.Fatalf("portfolio %d: unexpected error: %v", i, err)
		}
		if result.OverallScore < 0 || result.OverallScore > 100 {
			t.Errorf("portfolio %d: score %d out of range", i, result.OverallScore)
		}
	}
}

func TestDiagnose_Idempotent(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "600519", Shares: 100, Price: fptr(1700), YearChange: fptr(12)},
		{Symbol: "000001", Shares: 500, Price: fptr(11), YearChange: fptr(-8)},
		{Symbol: "300750", Shares: 200, Price: fptr(180), YearChange: fptr(35)},
	}

	svc := newTestService()
	first, err := svc.Diagnose(holdings)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := svc.Diagnose(holdings)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical input")
	}
}

func TestDiagnose_SuggestionsOrderedByPriority(t *testing.T) {
	// Concentrated, risky portfolio producing suggestions in several tiers
	result, err := newTestService().Diagnose([]models.Holding{
		{Symbol: "600519", Shares: 1000, Price: fptr(100), YearChange: fptr(-60)},
		{Symbol: "000001", Shares: 100, Price: fptr(100), YearChange: fptr(80)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Suggestions) == 0 {
		t.Fatal("Expected suggestions")
	}

	last := 0
	for _, s := range result.Suggestions {
		rank := priorityRank(s.Priority)
		if rank < last {
			t.Fatalf("Suggestions out of priority order: %+v", result.Suggestions)
		}
		last = rank
	}
	if result.Suggestions[0].Type != "concentration" {
		t.Errorf("Expected concentration suggestion first, got %s", result.Suggestions[0].Type)
	}
}

// A calm, diversified, sector-balanced portfolio: no issue trips a
// suggestion (the risk score floor is 50, so the positive note's
// strict <50 gate stays shut) and the composite lands at 85.
func TestDiagnose_SoundPortfolio(t *testing.T) {
	result, err := newTestService().Diagnose([]models.Holding{
		{Symbol: "600519", Shares: 100, Price: fptr(10), YearChange: fptr(5)},
		{Symbol: "000001", Shares: 100, Price: fptr(10), YearChange: fptr(3)},
		{Symbol: "300750", Shares: 100, Price: fptr(10), YearChange: fptr(-2)},
		{Symbol: "688111", Shares: 100, Price: fptr(10), YearChange: fptr(8)},
		{Symbol: "002594", Shares: 100, Price: fptr(10), YearChange: fptr(1)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Concentration.IsDiversified {
		t.Error("Expected a diversified portfolio")
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Expected no suggestions, got %+v", result.Suggestions)
	}
	// 70 + 10 (diversified) + 5 (balanced sectors)
	if result.OverallScore != 85 {
		t.Errorf("Expected overall score 85, got %d", result.OverallScore)
	}
	if result.RiskLevel != models.RiskLevelLow {
		t.Errorf("Expected low risk level, got %s", result.RiskLevel)
	}
}
