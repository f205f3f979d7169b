package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	HistoryBackendCSV    = "csv"
	HistoryBackendSQLite = "sqlite"
)

// Config holds every file path and endpoint the application needs.
type Config struct {
	Port    string
	GinMode string

	InventoryFile  string
	OrdersFile     string
	HistoryFile    string
	HistoryBackend string
	HistoryDB      string
	UploadDir      string
	StaticDir      string

	LookupTimeout    time.Duration
	OpenFoodFactsURL string
	UPCItemDBURL     string
	RedisAddr        string
	LookupCacheTTL   time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	CORSOrigins []string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded (%v), relying on system environment variables.", err)
	}

	dataDir := getEnv("DATA_DIR", "data")

	lookupTimeout, err := time.ParseDuration(getEnv("LOOKUP_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("LOOKUP_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),

		InventoryFile:  getEnv("INVENTORY_FILE", filepath.Join(dataDir, "inventory.csv")),
		OrdersFile:     getEnv("ORDERS_FILE", filepath.Join(dataDir, "orders.csv")),
		HistoryFile:    getEnv("HISTORY_FILE", filepath.Join(dataDir, "stock_history.csv")),
		HistoryBackend: strings.ToLower(getEnv("HISTORY_BACKEND", HistoryBackendCSV)),
		HistoryDB:      getEnv("HISTORY_DB", filepath.Join(dataDir, "inventory.db")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		StaticDir:      getEnv("STATIC_DIR", "static"),

		LookupTimeout:    lookupTimeout,
		OpenFoodFactsURL: getEnv("OPENFOODFACTS_URL", "https://world.openfoodfacts.org"),
		UPCItemDBURL:     getEnv("UPCITEMDB_URL", "https://api.upcitemdb.com"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		LookupCacheTTL:   cacheTTL,

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "inventory-events"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.InventoryFile == "" || c.OrdersFile == "" {
		return fmt.Errorf("INVENTORY_FILE and ORDERS_FILE are required")
	}
	switch c.HistoryBackend {
	case HistoryBackendCSV:
		if c.HistoryFile == "" {
			return fmt.Errorf("HISTORY_FILE is required for the csv history backend")
		}
	case HistoryBackendSQLite:
		if c.HistoryDB == "" {
			return fmt.Errorf("HISTORY_DB is required for the sqlite history backend")
		}
	default:
		return fmt.Errorf("unknown HISTORY_BACKEND %q", c.HistoryBackend)
	}
	if c.LookupTimeout <= 0 {
		return fmt.Errorf("LOOKUP_TIMEOUT must be positive")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
