package analysis

import "errors"

// Skip reasons produced by the analysis chain. Each one aborts only the
// smallest enclosing unit of work: ErrInsufficientPostEventWindow skips a
// single (event, horizon) pair, the rest skip the whole event. None of them
// abort the batch.
var (
	ErrUnparsableDate               = errors.New("event date could not be parsed")
	ErrMissingSurprise              = errors.New("no valid surprise value")
	ErrInsufficientPriceData        = errors.New("insufficient price data")
	ErrNoTradingDayFound            = errors.New("no trading day on or after event date")
	ErrNoPreEventWindow             = errors.New("no pre-event data available")
	ErrInsufficientEstimationWindow = errors.New("insufficient estimation period")
	ErrInsufficientPostEventWindow  = errors.New("insufficient post-event data")
	ErrDegenerateMarketModel        = errors.New("market return is constant over estimation window")
)
