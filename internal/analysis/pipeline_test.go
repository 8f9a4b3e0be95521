package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// stubPriceProvider serves fixed series, sliced to the requested range
type stubPriceProvider struct {
	series map[string]PriceSeries
	errs   map[string]error
}

func (s *stubPriceProvider) GetPrices(_ context.Context, symbol string, start, end time.Time) (PriceSeries, error) {
	if err, ok := s.errs[symbol]; ok {
		return PriceSeries{}, err
	}
	full, ok := s.series[symbol]
	if !ok {
		return PriceSeries{}, nil
	}
	var out PriceSeries
	for i, d := range full.Dates {
		if d.Before(start) || d.After(end) {
			continue
		}
		out.Dates = append(out.Dates, d)
		out.Prices = append(out.Prices, full.Prices[i])
	}
	return out, nil
}

// linkedSeries builds 200 trading days of stock and market prices where
// stock = 0.002 + 1.1*market holds exactly, with no noise
func linkedSeries(t *testing.T) (stock, market PriceSeries, days []time.Time) {
	t.Helper()
	days = tradingDays(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 200)

	marketReturns := make([]float64, 199)
	stockReturns := make([]float64, 199)
	for i := range marketReturns {
		marketReturns[i] = 0.01 * math.Sin(float64(i))
		stockReturns[i] = 0.002 + 1.1*marketReturns[i]
	}
	stock = seriesFromReturns(days, 150, stockReturns)
	market = seriesFromReturns(days, 4000, marketReturns)
	return stock, market, days
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MarketTicker = "^GSPC"
	return cfg
}

func TestPipelineAnalyzeTicker(t *testing.T) {
	stock, market, days := linkedSeries(t)
	provider := &stubPriceProvider{series: map[string]PriceSeries{
		"AAPL":  stock,
		"^GSPC": market,
	}}
	p := NewPipeline(provider, testConfig())

	t.Run("noiseless linear relationship yields zero CAR at every horizon", func(t *testing.T) {
		raw := []models.RawEarnings{{
			Date:     days[80].Format("2006-01-02"),
			Surprise: floatPtr(0.0234),
		}}

		results, diags := p.AnalyzeTicker(context.Background(), "AAPL", raw)
		assert.Empty(t, diags)
		require.Len(t, results, len(testConfig().Windows))

		for _, res := range results {
			assert.Equal(t, "AAPL", res.Ticker)
			assert.Equal(t, 0.0234, res.Surprise)
			assert.InDelta(t, 0.0, res.CAR, 1e-10, "window %d", res.Window)
		}
	})

	t.Run("one bad event does not abort the others", func(t *testing.T) {
		raw := []models.RawEarnings{
			{Date: days[80].Format("2006-01-02"), Surprise: floatPtr(0.01)},
			{Date: "garbage", Surprise: floatPtr(0.02)},
			{Date: days[120].Format("2006-01-02"), Surprise: floatPtr(0.03)},
		}

		results, diags := p.AnalyzeTicker(context.Background(), "AAPL", raw)
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0].Err, ErrUnparsableDate)
		assert.Equal(t, "garbage", diags[0].EventDate)

		require.Len(t, results, 2*len(testConfig().Windows))
		var surprises []float64
		for _, res := range results {
			surprises = append(surprises, res.Surprise)
		}
		assert.Contains(t, surprises, 0.01)
		assert.Contains(t, surprises, 0.03)
		assert.NotContains(t, surprises, 0.02)
	})

	t.Run("event near the end drops long horizons only", func(t *testing.T) {
		raw := []models.RawEarnings{{
			Date:     days[192].Format("2006-01-02"),
			Surprise: floatPtr(0.01),
		}}

		results, diags := p.AnalyzeTicker(context.Background(), "AAPL", raw)

		// Roughly 8 post-event rows remain: enough for the short horizons,
		// not for the 30-day one.
		var windows []int
		for _, res := range results {
			windows = append(windows, res.Window)
		}
		assert.Contains(t, windows, 1)
		assert.Contains(t, windows, 5)
		assert.NotContains(t, windows, 30)

		require.NotEmpty(t, diags)
		for _, d := range diags {
			assert.ErrorIs(t, d.Err, ErrInsufficientPostEventWindow)
		}
	})

	t.Run("missing market data skips the event", func(t *testing.T) {
		lonely := &stubPriceProvider{series: map[string]PriceSeries{"AAPL": stock}}
		p := NewPipeline(lonely, testConfig())

		results, diags := p.AnalyzeTicker(context.Background(), "AAPL", []models.RawEarnings{
			{Date: days[80].Format("2006-01-02"), Surprise: floatPtr(0.01)},
		})
		assert.Empty(t, results)
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0].Err, ErrInsufficientPriceData)
	})

	t.Run("provider failure becomes a diagnostic, not a panic", func(t *testing.T) {
		broken := &stubPriceProvider{
			series: map[string]PriceSeries{"^GSPC": market},
			errs:   map[string]error{"AAPL": errors.New("connection refused")},
		}
		p := NewPipeline(broken, testConfig())

		results, diags := p.AnalyzeTicker(context.Background(), "AAPL", []models.RawEarnings{
			{Date: days[80].Format("2006-01-02"), Surprise: floatPtr(0.01)},
		})
		assert.Empty(t, results)
		require.Len(t, diags, 1)
		assert.ErrorContains(t, diags[0].Err, "connection refused")
	})

	t.Run("event after all price data fails to locate", func(t *testing.T) {
		results, diags := p.AnalyzeTicker(context.Background(), "AAPL", []models.RawEarnings{
			{Date: days[199].AddDate(0, 0, 10).Format("2006-01-02"), Surprise: floatPtr(0.01)},
		})
		assert.Empty(t, results)
		require.Len(t, diags, 1)
		assert.ErrorIs(t, diags[0].Err, ErrNoTradingDayFound)
	})
}
