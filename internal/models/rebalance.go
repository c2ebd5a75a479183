package models

import "time"

// RiskProfile selects the rebalancing policy's aggressiveness
type RiskProfile string

const (
	RiskProfileLow    RiskProfile = "low"
	RiskProfileMedium RiskProfile = "medium"
	RiskProfileHigh   RiskProfile = "high"
)

// Valid reports whether the profile is one of the three known values
func (p RiskProfile) Valid() bool {
	return p == RiskProfileLow || p == RiskProfileMedium || p == RiskProfileHigh
}

// TradeAction is the direction of a suggested trade
type TradeAction string

const (
	TradeActionBuy  TradeAction = "buy"
	TradeActionSell TradeAction = "sell"
)

// CurrentAnalysis summarizes the portfolio state the plan starts from
type CurrentAnalysis struct {
	TotalValue       float64  `json:"totalValue"`
	StockCount       int      `json:"stockCount"`
	AvgWeight        float64  `json:"avgWeight"`
	RiskStocks       []string `json:"riskStocks"`
	HighWeightStocks []string `json:"highWeightStocks"`
}

// TradeSuggestion is a single buy or sell recommendation
type TradeSuggestion struct {
	Symbol         string      `json:"symbol"`
	Name           string      `json:"name,omitempty"`
	Action         TradeAction `json:"action"`
	Shares         int64       `json:"shares"`
	EstimatedValue float64     `json:"estimatedValue"`
	Reason         string      `json:"reason"`
	Priority       Priority    `json:"priority"`
}

// HoldPosition is a holding whose weight is already within the target band
type HoldPosition struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	CurrentWeight float64 `json:"currentWeight"`
	Reason        string  `json:"reason"`
}

// StrategyDescriptor names the rebalancing policy for the chosen profile
type StrategyDescriptor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// PlanWarning is a caution attached to the risk assessment
type PlanWarning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RiskAssessment estimates how disruptive executing the plan would be
type RiskAssessment struct {
	TurnoverRate   float64       `json:"turnoverRate"`
	RiskLevel      RiskBand      `json:"riskLevel"`
	SellCount      int           `json:"sellCount"`
	BuyCount       int           `json:"buyCount"`
	TotalSellValue float64       `json:"totalSellValue"`
	TotalBuyValue  float64       `json:"totalBuyValue"`
	Warnings       []PlanWarning `json:"warnings"`
}

// EstimatedImpact approximates the cash and cost effects of the plan
type EstimatedImpact struct {
	TotalSellValue  float64 `json:"totalSellValue"`
	TotalBuyValue   float64 `json:"totalBuyValue"`
	TransactionCost float64 `json:"transactionCost"`
	NetCashFlow     float64 `json:"netCashFlow"`
	NewStockCount   int     `json:"newStockCount"`
}

// RebalancePlan is the full output of the rebalance engine
type RebalancePlan struct {
	CurrentAnalysis CurrentAnalysis    `json:"currentAnalysis"`
	TargetRisk      RiskProfile        `json:"targetRisk"`
	TargetWeights   map[string]float64 `json:"targetWeights"`
	Trades          []TradeSuggestion  `json:"trades"`
	Holds           []HoldPosition     `json:"holds"`
	Strategy        StrategyDescriptor `json:"strategy"`
	RiskAssessment  RiskAssessment     `json:"riskAssessment"`
	EstimatedImpact EstimatedImpact    `json:"estimatedImpact"`
	GeneratedAt     time.Time          `json:"generatedAt"`
}
