package analysis

import (
	"fmt"
	"time"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// Date layouts accepted for raw earnings records, tried in order
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeEvent converts a raw earnings record into a canonical event for
// the given ticker. The event date is made timezone-naive: an offset in the
// raw date is discarded without shifting the represented local time. The
// surprise is resolved to a fraction, preferring a direct Surprise value over
// SurprisePct/100. Records with an unparsable date or no usable surprise are
// rejected.
func NormalizeEvent(ticker string, raw models.RawEarnings) (models.EarningsEvent, error) {
	eventDate, err := parseEventDate(raw.Date)
	if err != nil {
		return models.EarningsEvent{}, fmt.Errorf("%w: %q", ErrUnparsableDate, raw.Date)
	}

	var surprise float64
	switch {
	case raw.Surprise != nil:
		surprise = *raw.Surprise
	case raw.SurprisePct != nil:
		surprise = *raw.SurprisePct / 100
	default:
		return models.EarningsEvent{}, fmt.Errorf("%w for %s on %s", ErrMissingSurprise, ticker, raw.Date)
	}

	event := models.EarningsEvent{
		Ticker:    ticker,
		EventDate: eventDate,
		Surprise:  surprise,
	}
	if raw.EPSEstimate != nil {
		v := *raw.EPSEstimate
		event.EPSEstimate = &v
	}
	if raw.ReportedEPS != nil {
		v := *raw.ReportedEPS
		event.ReportedEPS = &v
	}
	return event, nil
}

// parseEventDate parses a provider date string and strips any timezone
// offset, keeping the local wall-clock reading as UTC.
func parseEventDate(s string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
