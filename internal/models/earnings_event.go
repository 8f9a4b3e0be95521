package models

import "time"

// RawEarnings is an earnings record as delivered by a data provider, before
// normalization. The date arrives as a string (providers disagree on format and
// timezone handling) and the surprise may be reported either as a fraction or
// as a percentage.
type RawEarnings struct {
	Date        string   `json:"date"`
	Surprise    *float64 `json:"surprise,omitempty"`
	SurprisePct *float64 `json:"surprise_pct,omitempty"`
	EPSEstimate *float64 `json:"eps_estimate,omitempty"`
	ReportedEPS *float64 `json:"reported_eps,omitempty"`
}

// EarningsEvent is a normalized earnings announcement. EventDate is
// timezone-naive (stored as UTC wall-clock time) and Surprise is always a
// fraction, never a raw percentage.
type EarningsEvent struct {
	Ticker      string    `json:"ticker"`
	EventDate   time.Time `json:"event_date"`
	Surprise    float64   `json:"surprise"`
	EPSEstimate *float64  `json:"eps_estimate,omitempty"`
	ReportedEPS *float64  `json:"reported_eps,omitempty"`
}
