package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
)

// MarketDataRepository defines the database operations the consumer needs
type MarketDataRepository interface {
	CreatePriceBar(p *models.PriceBarDaily) error
	PriceBarExists(symbol string, date time.Time) (bool, error)
	CreateEarningsRecord(symbol string, r *models.RawEarnings) error
	EarningsRecordExists(symbol, eventDate string) (bool, error)
}

// Consumer ingests market-data events into the database. Price bars are
// upserted (late corrections from the provider overwrite earlier bars) and
// earnings records are deduplicated on (symbol, event date).
type Consumer struct {
	reader *kafka.Reader
	repo   MarketDataRepository
}

// NewConsumer creates a new Kafka consumer for market-data events
func NewConsumer(brokers []string, topic, groupID string, repo MarketDataRepository) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader: reader,
		repo:   repo,
	}
}

// Start begins consuming messages from Kafka
func (c *Consumer) Start(ctx context.Context) error {
	log.Printf("Starting Kafka consumer for topic: %s", c.reader.Config().Topic)

	for {
		select {
		case <-ctx.Done():
			log.Println("Kafka consumer shutting down...")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil // Context cancelled, normal shutdown
				}
				log.Printf("Error reading message: %v", err)
				continue
			}

			if err := c.processMessage(msg); err != nil {
				log.Printf("Error processing message: %v", err)
				// Continue processing other messages
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(msg kafka.Message) error {
	log.Printf("Received message from partition %d offset %d: key=%s",
		msg.Partition, msg.Offset, string(msg.Key))

	var event models.MarketDataEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal market data event: %w", err)
	}

	switch event.EventType {
	case models.EventTypePriceBarUpsert:
		return c.processPriceBar(event)
	case models.EventTypeEarningsReported:
		return c.processEarnings(event)
	default:
		log.Printf("Ignoring event type: %s", event.EventType)
		return nil
	}
}

// processPriceBar stores one daily bar from a PRICE_BAR_UPSERT event
func (c *Consumer) processPriceBar(event models.MarketDataEvent) error {
	if event.Bar == nil {
		return fmt.Errorf("price bar event for %s has no bar payload", event.Symbol)
	}

	bar, err := c.convertEventToPriceBar(event.Symbol, *event.Bar)
	if err != nil {
		return fmt.Errorf("failed to convert event to price bar: %w", err)
	}

	if err := c.repo.CreatePriceBar(bar); err != nil {
		return fmt.Errorf("failed to save price bar: %w", err)
	}

	log.Printf("Saved price bar: %s %s adj_close=%s",
		bar.Symbol, bar.Date.Format("2006-01-02"), bar.AdjClose)
	return nil
}

// processEarnings stores one earnings record from an EARNINGS_REPORTED event
func (c *Consumer) processEarnings(event models.MarketDataEvent) error {
	if event.Earnings == nil {
		return fmt.Errorf("earnings event for %s has no earnings payload", event.Symbol)
	}

	// Check for duplicate (idempotency)
	exists, err := c.repo.EarningsRecordExists(event.Symbol, event.Earnings.Date)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate earnings record: %w", err)
	}
	if exists {
		log.Printf("Earnings record for %s on %s already exists, skipping",
			event.Symbol, event.Earnings.Date)
		return nil
	}

	if err := c.repo.CreateEarningsRecord(event.Symbol, event.Earnings); err != nil {
		return fmt.Errorf("failed to save earnings record: %w", err)
	}

	log.Printf("Saved earnings record: %s on %s", event.Symbol, event.Earnings.Date)
	return nil
}

// convertEventToPriceBar maps the wire form of a bar to the database model
func (c *Consumer) convertEventToPriceBar(symbol string, data models.PriceBarData) (*models.PriceBarDaily, error) {
	date, err := time.Parse("2006-01-02", data.Date)
	if err != nil {
		date, err = time.Parse(time.RFC3339, data.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid bar date %s: %w", data.Date, err)
		}
	}

	adjClose, err := decimal.NewFromString(data.AdjClose)
	if err != nil {
		return nil, fmt.Errorf("invalid adjusted close %s: %w", data.AdjClose, err)
	}

	// Fall back to the adjusted close when the raw close is absent
	closePrice := adjClose
	if data.Close != "" {
		closePrice, err = decimal.NewFromString(data.Close)
		if err != nil {
			return nil, fmt.Errorf("invalid close %s: %w", data.Close, err)
		}
	}

	return &models.PriceBarDaily{
		Symbol:   symbol,
		Date:     date,
		AdjClose: adjClose,
		Close:    closePrice,
		Volume:   data.Volume,
	}, nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
