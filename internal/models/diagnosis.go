package models

import "time"

// RiskBand is a three-level risk classification used across reports
type RiskBand string

const (
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// RiskLevel is the overall portfolio risk classification
type RiskLevel string

const (
	RiskLevelNone     RiskLevel = "none"
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelVeryHigh RiskLevel = "very_high"
)

// Text returns a human-readable description of the risk level
func (r RiskLevel) Text() string {
	switch r {
	case RiskLevelNone:
		return "No holdings"
	case RiskLevelLow:
		return "Low risk"
	case RiskLevelMedium:
		return "Medium risk"
	case RiskLevelHigh:
		return "High risk"
	case RiskLevelVeryHigh:
		return "Very high risk"
	}
	return string(r)
}

// Priority ranks suggestions and trades
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// HoldingWeight is one holding's share of total portfolio value
type HoldingWeight struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name,omitempty"`
	Weight float64 `json:"weight"`
	Value  float64 `json:"value"`
}

// ConcentrationReport describes how much of the portfolio the largest
// positions represent. Holdings are sorted by weight descending.
type ConcentrationReport struct {
	Holdings          []HoldingWeight `json:"holdings"`
	TopHolding        string          `json:"topHolding"`
	Top3Concentration float64         `json:"top3Concentration"`
	Top5Concentration float64         `json:"top5Concentration"`
	ConcentrationRisk RiskBand        `json:"concentrationRisk"`
	IsDiversified     bool            `json:"isDiversified"`
}

// RiskFactor is a single named contributor to portfolio risk
type RiskFactor struct {
	Type        string   `json:"type"`
	Level       RiskBand `json:"level"`
	Description string   `json:"description"`
}

// RiskReport scores portfolio risk from the dispersion of year changes
type RiskReport struct {
	Score              float64      `json:"score"`
	Volatility         float64      `json:"volatility"`
	EstimatedDrawdown  float64      `json:"estimatedDrawdown"`
	AvgYearChange      float64      `json:"avgYearChange"`
	NegativeStockCount int          `json:"negativeStockCount"`
	RiskFactors        []RiskFactor `json:"riskFactors"`
}

// SectorBucket aggregates the holdings mapped to one sector
type SectorBucket struct {
	Sector  string   `json:"sector"`
	Count   int      `json:"count"`
	Value   float64  `json:"value"`
	Members []string `json:"members"`
}

// SectorReport buckets holdings into sectors by symbol prefix
type SectorReport struct {
	Sectors    []SectorBucket `json:"sectors"`
	TopSector  string         `json:"topSector"`
	SectorRisk RiskBand       `json:"sectorRisk"`
	IsBalanced bool           `json:"isBalanced"`
}

// LiquidityReport flags positions that are outsized relative to the rest
type LiquidityReport struct {
	TotalShares        float64  `json:"totalShares"`
	AveragePosition    float64  `json:"averagePosition"`
	LargePositionCount int      `json:"largePositionCount"`
	LargePositions     []string `json:"largePositions,omitempty"`
	LiquidityRisk      RiskBand `json:"liquidityRisk"`
}

// Suggestion is a ranked optimization recommendation
type Suggestion struct {
	Type     string   `json:"type"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message"`
}

// DiagnosisResult aggregates the four reports into an overall advisory view
type DiagnosisResult struct {
	OverallScore       int                  `json:"overallScore"`
	RiskLevel          RiskLevel            `json:"riskLevel"`
	RiskLevelText      string               `json:"riskLevelText"`
	TotalValue         float64              `json:"totalValue"`
	StockCount         int                  `json:"stockCount"`
	Message            string               `json:"message,omitempty"`
	Concentration      *ConcentrationReport `json:"concentration,omitempty"`
	RiskAnalysis       *RiskReport          `json:"riskAnalysis,omitempty"`
	SectorDistribution *SectorReport        `json:"sectorDistribution,omitempty"`
	LiquidityAnalysis  *LiquidityReport     `json:"liquidityAnalysis,omitempty"`
	Suggestions        []Suggestion         `json:"suggestions"`
	GeneratedAt        time.Time            `json:"generatedAt"`
}
