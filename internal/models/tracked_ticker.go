package models

import "time"

// TrackedTicker represents a symbol in the analysis universe
type TrackedTicker struct {
	Symbol    string    `json:"symbol"`
	Enabled   bool      `json:"enabled"`
	Priority  int       `json:"priority"` // 1=high, 2=medium, 3=low
	Notes     string    `json:"notes,omitempty"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
