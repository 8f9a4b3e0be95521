package analysis

import (
	"context"
	"time"
)

// PriceSeries is an ordered adjusted-close time series. Dates are strictly
// increasing with no duplicates; Dates and Prices always have equal length.
type PriceSeries struct {
	Dates  []time.Time
	Prices []float64
}

// Len returns the number of observations in the series
func (s PriceSeries) Len() int {
	return len(s.Dates)
}

// Empty reports whether the series has no observations
func (s PriceSeries) Empty() bool {
	return len(s.Dates) == 0
}

// PriceProvider supplies adjusted-close series for a symbol over a date range.
// A symbol with no data in the range yields an empty series, not an error.
type PriceProvider interface {
	GetPrices(ctx context.Context, symbol string, start, end time.Time) (PriceSeries, error)
}

// AlignedReturns holds simple daily returns on the intersection of stock and
// market trading dates, in ascending date order. Expected and Abnormal are
// populated once a market model has been fit.
type AlignedReturns struct {
	Dates    []time.Time
	Stock    []float64
	Market   []float64
	Expected []float64
	Abnormal []float64
}

// Len returns the number of return rows
func (r *AlignedReturns) Len() int {
	return len(r.Dates)
}
