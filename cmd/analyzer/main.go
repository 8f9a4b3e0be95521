package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/analysis"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/config"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/database"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/kafka"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/marketdata"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/models"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/report"
)

const minRegressionObs = 10

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate("db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	prices := marketdata.NewCachedPriceProvider(
		marketdata.NewPriceProvider(db),
		rdb,
		time.Duration(cfg.Redis.PriceTTLMinutes)*time.Minute,
	)
	earnings := marketdata.NewEarningsProvider(db)
	pipeline := analysis.NewPipeline(prices, pipelineConfig(cfg.Analysis))

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic)
	defer producer.Close()

	tickers := universe(db, cfg.Analysis.Tickers)
	log.Printf("Analyzing %d tickers against %s", len(tickers), cfg.Analysis.MarketTicker)

	var allResults []*models.CARResult
	for _, ticker := range tickers {
		rawEvents, err := earnings.GetEarnings(ctx, ticker)
		if err != nil {
			log.Printf("Failed to load earnings for %s: %v", ticker, err)
			continue
		}
		if len(rawEvents) == 0 {
			log.Printf("No earnings events for %s, skipping", ticker)
			continue
		}

		results, diagnostics := pipeline.AnalyzeTicker(ctx, ticker, rawEvents)
		for _, d := range diagnostics {
			log.Printf("Skipped %s event %s window %d: %v", d.Ticker, d.EventDate, d.Window, d.Err)
		}
		if len(results) == 0 {
			continue
		}

		stored := make([]*models.CARResult, len(results))
		for i := range results {
			stored[i] = &results[i]
		}
		if err := db.CreateCARResultBatch(stored); err != nil {
			log.Printf("Failed to store results for %s: %v", ticker, err)
			continue
		}

		for _, res := range stored {
			if err := producer.PublishCARComputed(ctx, res); err != nil {
				log.Printf("Failed to publish CAR event for %s: %v", ticker, err)
			}
		}

		allResults = append(allResults, stored...)
		log.Printf("Stored %d CAR results for %s", len(stored), ticker)
	}

	if len(allResults) == 0 {
		log.Println("No CAR results computed, nothing to report")
		return
	}

	if err := os.MkdirAll(cfg.Analysis.OutputDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	resultsPath := filepath.Join(cfg.Analysis.OutputDir, "car_results.csv")
	if err := report.WriteResultsCSV(resultsPath, allResults); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	log.Printf("Wrote %d results to %s", len(allResults), resultsPath)

	summary := report.Summarize(allResults, cfg.Analysis.CARWindows, minRegressionObs)
	for _, reg := range summary {
		log.Printf("Window %d: coefficient=%.6f intercept=%.6f r2=%.4f n=%d",
			reg.Window, reg.Slope, reg.Intercept, reg.RSquared, reg.N)
	}

	summaryPath := filepath.Join(cfg.Analysis.OutputDir, "car_regression_summary.csv")
	if err := report.WriteSummaryCSV(summaryPath, summary); err != nil {
		log.Fatalf("Failed to write summary: %v", err)
	}
	log.Printf("Wrote regression summary to %s", summaryPath)
}

// universe prefers the tracked-ticker table, falling back to the configured
// list when the table is empty or unavailable.
func universe(db *database.DB, fallback []string) []string {
	symbols, err := db.GetEnabledSymbols()
	if err != nil {
		log.Printf("Failed to load tracked tickers, using configured list: %v", err)
		return fallback
	}
	if len(symbols) == 0 {
		return fallback
	}
	return symbols
}

func pipelineConfig(a config.AnalysisConfig) analysis.Config {
	return analysis.Config{
		MarketTicker:      a.MarketTicker,
		Windows:           a.CARWindows,
		LookbackDays:      a.LookbackDays,
		PadDays:           a.PadDays,
		MinAlignedRows:    a.MinAlignedRows,
		MinEstimationRows: a.MinEstimationRows,
		MinCoverage:       a.MinCoverage,
	}
}
