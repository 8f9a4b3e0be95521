package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceBarDaily represents one daily price observation for a symbol.
// AdjClose is the dividend/split adjusted close used for return calculations.
type PriceBarDaily struct {
	ID        int             `json:"id"`
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	CreatedAt time.Time       `json:"created_at"`
}
