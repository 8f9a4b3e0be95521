package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/analysis"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// PriceStore is the slice of the database layer the price provider needs
type PriceStore interface {
	GetPriceBarRange(symbol string, startDate, endDate time.Time) ([]*models.PriceBarDaily, error)
}

// EarningsStore is the slice of the database layer the earnings provider needs
type EarningsStore interface {
	GetEarningsBySymbol(symbol string) ([]*models.RawEarnings, error)
}

// PriceProvider serves adjusted-close series from the price_data_daily table.
// A symbol with no rows in the range yields an empty series, never an error,
// so the analysis can apply its own sufficiency checks uniformly.
type PriceProvider struct {
	store PriceStore
}

// NewPriceProvider creates a database-backed price provider
func NewPriceProvider(store PriceStore) *PriceProvider {
	return &PriceProvider{store: store}
}

// GetPrices returns the adjusted-close series for a symbol over [start, end],
// ascending by date. Dates are normalized to midnight UTC so series from
// different symbols align on calendar date.
func (p *PriceProvider) GetPrices(_ context.Context, symbol string, start, end time.Time) (analysis.PriceSeries, error) {
	bars, err := p.store.GetPriceBarRange(symbol, start, end)
	if err != nil {
		return analysis.PriceSeries{}, fmt.Errorf("failed to load prices for %s: %w", symbol, err)
	}

	var series analysis.PriceSeries
	for _, bar := range bars {
		y, m, d := bar.Date.UTC().Date()
		series.Dates = append(series.Dates, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
		series.Prices = append(series.Prices, bar.AdjClose.InexactFloat64())
	}
	return series, nil
}

// EarningsProvider serves raw earnings records from the earnings_events table
type EarningsProvider struct {
	store EarningsStore
}

// NewEarningsProvider creates a database-backed earnings provider
func NewEarningsProvider(store EarningsStore) *EarningsProvider {
	return &EarningsProvider{store: store}
}

// GetEarnings returns the past earnings records for a symbol. Future-dated
// events are already filtered by the store.
func (p *EarningsProvider) GetEarnings(_ context.Context, symbol string) ([]models.RawEarnings, error) {
	records, err := p.store.GetEarningsBySymbol(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to load earnings for %s: %w", symbol, err)
	}

	out := make([]models.RawEarnings, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	return out, nil
}
