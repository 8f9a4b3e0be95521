package models

import "time"

// Event types carried on the market-data topic
const (
	EventTypePriceBarUpsert   = "PRICE_BAR_UPSERT"
	EventTypeEarningsReported = "EARNINGS_REPORTED"
	EventTypeCARComputed      = "CAR_COMPUTED"
)

// MarketDataEvent is a Kafka event on the ingestion topic. Exactly one of
// Bar or Earnings is set, according to EventType.
type MarketDataEvent struct {
	EventType string        `json:"event_type"`
	Symbol    string        `json:"symbol"`
	Bar       *PriceBarData `json:"bar,omitempty"`
	Earnings  *RawEarnings  `json:"earnings,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// PriceBarData is the wire form of a daily price bar. Prices are strings to
// avoid float drift in transit; the consumer parses them into decimals.
type PriceBarData struct {
	Date     string `json:"date"`
	AdjClose string `json:"adj_close"`
	Close    string `json:"close"`
	Volume   int64  `json:"volume"`
}

// CAREvent is published for every stored CAR result
type CAREvent struct {
	EventType string     `json:"event_type"`
	Ticker    string     `json:"ticker"`
	Result    *CARResult `json:"result,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
