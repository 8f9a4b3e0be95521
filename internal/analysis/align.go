package analysis

import (
	"fmt"
	"time"
)

// alignReturns merges the stock and market price series on date and derives
// simple daily returns. Only dates present in both series survive; the
// regression cannot tolerate unpaired observations, so rows missing on either
// side are dropped outright rather than interpolated. Fails if either series
// is empty or fewer than minRows aligned price rows remain.
func alignReturns(stock, market PriceSeries, minRows int) (*AlignedReturns, error) {
	if stock.Empty() || market.Empty() {
		return nil, fmt.Errorf("%w: empty price series", ErrInsufficientPriceData)
	}

	marketByDate := make(map[time.Time]float64, market.Len())
	for i, d := range market.Dates {
		marketByDate[d] = market.Prices[i]
	}

	// Stock dates are already ascending, so the intersection stays ordered.
	var (
		dates        []time.Time
		stockPrices  []float64
		marketPrices []float64
	)
	for i, d := range stock.Dates {
		mp, ok := marketByDate[d]
		if !ok {
			continue
		}
		dates = append(dates, d)
		stockPrices = append(stockPrices, stock.Prices[i])
		marketPrices = append(marketPrices, mp)
	}

	if len(dates) < minRows {
		return nil, fmt.Errorf("%w: only %d aligned price rows, need %d",
			ErrInsufficientPriceData, len(dates), minRows)
	}

	// Period-over-period percentage change; the first row has no prior
	// period and is dropped.
	n := len(dates) - 1
	r := &AlignedReturns{
		Dates:  make([]time.Time, n),
		Stock:  make([]float64, n),
		Market: make([]float64, n),
	}
	for i := 1; i < len(dates); i++ {
		r.Dates[i-1] = dates[i]
		r.Stock[i-1] = stockPrices[i]/stockPrices[i-1] - 1
		r.Market[i-1] = marketPrices[i]/marketPrices[i-1] - 1
	}
	return r, nil
}
