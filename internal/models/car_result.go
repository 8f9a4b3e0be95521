package models

import "time"

// CARResult is one cumulative abnormal return observation: a single
// (ticker, earnings event, horizon) pair that passed all sufficiency checks.
type CARResult struct {
	ID          int       `json:"id"`
	Ticker      string    `json:"ticker"`
	EventDate   time.Time `json:"event_date"`
	Window      int       `json:"car_window"`
	CAR         float64   `json:"car"`
	Surprise    float64   `json:"surprise"`
	EPSEstimate *float64  `json:"eps_estimate,omitempty"`
	ReportedEPS *float64  `json:"reported_eps,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
