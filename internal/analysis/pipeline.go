package analysis

import (
	"context"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// Config carries the analysis policy. The sufficiency thresholds default to
// the values in DefaultConfig but are not assumed optimal; callers may tune
// them.
type Config struct {
	MarketTicker      string  // benchmark symbol, e.g. "^GSPC"
	Windows           []int   // post-event horizons in trading days
	LookbackDays      int     // calendar days of price history before the event
	PadDays           int     // calendar days fetched beyond the longest window
	MinAlignedRows    int     // minimum aligned price rows for an event
	MinEstimationRows int     // minimum rows in the estimation sample
	MinCoverage       float64 // minimum realized fraction of a CAR window
}

// DefaultConfig returns the standard analysis policy
func DefaultConfig() Config {
	return Config{
		MarketTicker:      "^GSPC",
		Windows:           []int{1, 2, 5, 10, 30},
		LookbackDays:      120,
		PadDays:           5,
		MinAlignedRows:    30,
		MinEstimationRows: 20,
		MinCoverage:       0.7,
	}
}

// MaxWindow returns the longest configured horizon
func (c Config) MaxWindow() int {
	max := 0
	for _, w := range c.Windows {
		if w > max {
			max = w
		}
	}
	return max
}

// Diagnostic records one skipped unit of work. Window is zero when the whole
// event was skipped rather than a single horizon.
type Diagnostic struct {
	Ticker    string
	EventDate string
	Window    int
	Err       error
}

// Pipeline computes CAR results for earnings events of a ticker
type Pipeline struct {
	prices PriceProvider
	cfg    Config
}

// NewPipeline creates a pipeline backed by the given price provider
func NewPipeline(prices PriceProvider, cfg Config) *Pipeline {
	return &Pipeline{prices: prices, cfg: cfg}
}

// AnalyzeTicker runs the full analysis chain for every raw earnings event of
// one ticker. Failures are isolated: a bad event yields a diagnostic and the
// remaining events still run, and within an event a failed horizon does not
// abort the other horizons. An empty result set is a valid outcome.
func (p *Pipeline) AnalyzeTicker(ctx context.Context, ticker string, rawEvents []models.RawEarnings) ([]models.CARResult, []Diagnostic) {
	var (
		results     []models.CARResult
		diagnostics []Diagnostic
	)
	for _, raw := range rawEvents {
		event, err := NormalizeEvent(ticker, raw)
		if err != nil {
			diagnostics = append(diagnostics, Diagnostic{Ticker: ticker, EventDate: raw.Date, Err: err})
			continue
		}
		eventResults, eventDiags := p.AnalyzeEvent(ctx, event)
		results = append(results, eventResults...)
		diagnostics = append(diagnostics, eventDiags...)
	}
	return results, diagnostics
}

// AnalyzeEvent computes CAR results for a single canonical event, one per
// configured horizon that passes all sufficiency checks.
func (p *Pipeline) AnalyzeEvent(ctx context.Context, event models.EarningsEvent) ([]models.CARResult, []Diagnostic) {
	eventDay := event.EventDate.Format("2006-01-02")
	skip := func(window int, err error) []Diagnostic {
		return []Diagnostic{{Ticker: event.Ticker, EventDate: eventDay, Window: window, Err: err}}
	}

	start := event.EventDate.AddDate(0, 0, -p.cfg.LookbackDays)
	end := event.EventDate.AddDate(0, 0, p.cfg.MaxWindow()+p.cfg.PadDays)

	stock, err := p.prices.GetPrices(ctx, event.Ticker, start, end)
	if err != nil {
		return nil, skip(0, err)
	}
	market, err := p.prices.GetPrices(ctx, p.cfg.MarketTicker, start, end)
	if err != nil {
		return nil, skip(0, err)
	}

	returns, err := alignReturns(stock, market, p.cfg.MinAlignedRows)
	if err != nil {
		return nil, skip(0, err)
	}

	eventLoc, err := locateEvent(returns.Dates, event.EventDate)
	if err != nil {
		return nil, skip(0, err)
	}

	estimationEnd, err := estimationBound(eventLoc)
	if err != nil {
		return nil, skip(0, err)
	}

	model, err := fitMarketModel(returns, estimationEnd, p.cfg.MinEstimationRows)
	if err != nil {
		return nil, skip(0, err)
	}
	model.score(returns)

	var (
		results     []models.CARResult
		diagnostics []Diagnostic
	)
	for _, window := range p.cfg.Windows {
		car, err := aggregateCAR(returns, eventLoc, window, p.cfg.MinCoverage)
		if err != nil {
			diagnostics = append(diagnostics, skip(window, err)...)
			continue
		}
		results = append(results, models.CARResult{
			Ticker:      event.Ticker,
			EventDate:   event.EventDate,
			Window:      window,
			CAR:         car,
			Surprise:    event.Surprise,
			EPSEstimate: event.EPSEstimate,
			ReportedEPS: event.ReportedEPS,
		})
	}
	return results, diagnostics
}
