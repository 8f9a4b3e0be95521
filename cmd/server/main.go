package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/analysis"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/api"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/config"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/database"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/kafka"
	"github.com/Vihaan-Narvekar/earnings-surprise-analysis/internal/marketdata"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate("db/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations applied")

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
	pipeline := analysis.NewPipeline(prices, pipelineConfig(cfg.Analysis))

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ResultsTopic)
	defer producer.Close()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.IngestTopic, cfg.Kafka.ConsumerGroup, db)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Printf("Kafka consumer stopped: %v", err)
		}
	}()

	handler := api.NewHandler(db, producer, pipeline)
	router := api.SetupRoutes(handler)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %s, shutting down...", sig)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
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
