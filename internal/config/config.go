package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	AppPort string

	APIBaseURL   string
	APITimeout   time.Duration
	APIRateLimit float64
	APIRateBurst int

	PollInterval time.Duration

	// LedgerBackend selects where assigned order ids are remembered:
	// "memory", "redis" or "postgres".
	LedgerBackend string
	RedisAddr     string
	DBURL         string

	KafkaBrokers []string
	KafkaTopic   string

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string

	CORSOrigins []string
	SessionFile string
}

// Load reads the environment (and .env when present) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		AppPort:        getEnv("APP_PORT", "8080"),
		APIBaseURL:     strings.TrimRight(os.Getenv("API_BASE_URL"), "/"),
		APITimeout:     getDuration("API_TIMEOUT", 15*time.Second),
		APIRateLimit:   getFloat("API_RATE_LIMIT", 10),
		APIRateBurst:   getInt("API_RATE_BURST", 20),
		PollInterval:   getDuration("POLL_INTERVAL", 30*time.Second),
		LedgerBackend:  getEnv("LEDGER_BACKEND", "memory"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		DBURL:          os.Getenv("DB_URL"),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "backoffice.events"),
		CompanyName:    getEnv("COMPANY_NAME", "ReLove Marketplace"),
		CompanyAddress: os.Getenv("COMPANY_ADDRESS"),
		CompanyPhone:   os.Getenv("COMPANY_PHONE"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SessionFile:    os.Getenv("SESSION_FILE"),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("API_BASE_URL is not set")
	}

	switch cfg.LedgerBackend {
	case "memory", "redis":
	case "postgres":
		if cfg.DBURL == "" {
			return nil, errors.New("DB_URL is required for the postgres ledger")
		}
	default:
		return nil, errors.New("LEDGER_BACKEND must be memory, redis or postgres")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f > 0 {
		return f
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
