package models

import "fmt"

// InvalidPortfolioError reports a malformed holding. The whole batch is
// rejected; no partial results are returned.
type InvalidPortfolioError struct {
	Symbol string
	Reason string
}

func (e *InvalidPortfolioError) Error() string {
	return fmt.Sprintf("invalid holding %s: %s", e.Symbol, e.Reason)
}

// EmptyPortfolioError reports that an operation requiring holdings was
// called with none.
type EmptyPortfolioError struct{}

func (e *EmptyPortfolioError) Error() string {
	return "portfolio has no holdings"
}
