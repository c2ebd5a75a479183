// Package models defines data structures for the portfolio advisor
package models

// Holding represents a single position supplied by the caller.
// Price, AvgCost and YearChange are pointers because the wire contract
// allows null: an absent price falls back to average cost (and vice
// versa), an absent year change is treated as zero. Holdings are never
// mutated by the engines.
type Holding struct {
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name,omitempty"`
	Market     string   `json:"market,omitempty"`
	Shares     float64  `json:"shares"`
	AvgCost    *float64 `json:"avgCost"`
	Price      *float64 `json:"price"`
	YearChange *float64 `json:"yearChange"`
}

// UnitPrice returns the price used for valuation: current price when
// present, otherwise average cost, otherwise zero.
func (h Holding) UnitPrice() float64 {
	if h.Price != nil {
		return *h.Price
	}
	if h.AvgCost != nil {
		return *h.AvgCost
	}
	return 0
}

// MarketValue returns shares x unit price
func (h Holding) MarketValue() float64 {
	return h.Shares * h.UnitPrice()
}

// Change returns the year-over-year change percentage, zero when absent
func (h Holding) Change() float64 {
	if h.YearChange == nil {
		return 0
	}
	return *h.YearChange
}

// PortfolioSnapshot is the read-only input both engines consume: the
// caller's holdings plus the derived total value. Built fresh per call.
type PortfolioSnapshot struct {
	Holdings   []Holding `json:"holdings"`
	TotalValue float64   `json:"totalValue"`
}

// NewPortfolioSnapshot validates holdings and derives the total value.
// A holding with a missing symbol, non-positive shares, or negative
// price/cost rejects the whole batch with InvalidPortfolioError.
func NewPortfolioSnapshot(holdings []Holding) (*PortfolioSnapshot, error) {
	total := 0.0
	for _, h := range holdings {
		if h.Symbol == "" {
			return nil, &InvalidPortfolioError{Symbol: "(unnamed)", Reason: "missing symbol"}
		}
		if h.Shares <= 0 {
			return nil, &InvalidPortfolioError{Symbol: h.Symbol, Reason: "shares must be positive"}
		}
		if h.Price != nil && *h.Price < 0 {
			return nil, &InvalidPortfolioError{Symbol: h.Symbol, Reason: "price must not be negative"}
		}
		if h.AvgCost != nil && *h.AvgCost < 0 {
			return nil, &InvalidPortfolioError{Symbol: h.Symbol, Reason: "average cost must not be negative"}
		}
		total += h.MarketValue()
	}

	return &PortfolioSnapshot{Holdings: holdings, TotalValue: total}, nil
}

// IsEmpty reports whether the snapshot has no holdings
func (s *PortfolioSnapshot) IsEmpty() bool {
	return len(s.Holdings) == 0
}
