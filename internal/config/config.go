package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers       []string
	IngestTopic   string
	ResultsTopic  string
	ConsumerGroup string
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	PriceTTLMinutes int
}

// AnalysisConfig holds the event-study policy: the ticker universe, the
// benchmark, the CAR horizons and the data-sufficiency thresholds. The
// thresholds are conventional rather than derived, so they stay tunable.
type AnalysisConfig struct {
	Tickers           []string
	MarketTicker      string
	CARWindows        []int
	LookbackDays      int
	PadDays           int
	MinAlignedRows    int
	MinEstimationRows int
	MinCoverage       float64
	OutputDir         string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "earningsdrift"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			IngestTopic:   getEnv("KAFKA_INGEST_TOPIC", "market-data"),
			ResultsTopic:  getEnv("KAFKA_RESULTS_TOPIC", "car-results"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "earnings-drift-service"),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "localhost:6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			PriceTTLMinutes: getEnvInt("REDIS_PRICE_TTL_MINUTES", 60),
		},
		Analysis: AnalysisConfig{
			Tickers:           getEnvList("ANALYSIS_TICKERS", []string{"AAPL", "NVDA", "GOOGL", "PLTR"}),
			MarketTicker:      getEnv("ANALYSIS_MARKET_TICKER", "^GSPC"),
			CARWindows:        getEnvIntList("ANALYSIS_CAR_WINDOWS", []int{1, 2, 5, 10, 30}),
			LookbackDays:      getEnvInt("ANALYSIS_LOOKBACK_DAYS", 120),
			PadDays:           getEnvInt("ANALYSIS_PAD_DAYS", 5),
			MinAlignedRows:    getEnvInt("ANALYSIS_MIN_ALIGNED_ROWS", 30),
			MinEstimationRows: getEnvInt("ANALYSIS_MIN_ESTIMATION_ROWS", 20),
			MinCoverage:       getEnvFloat("ANALYSIS_MIN_COVERAGE", 0.7),
			OutputDir:         getEnv("ANALYSIS_OUTPUT_DIR", "output"),
		},
	}
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvIntList(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
