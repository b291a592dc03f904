package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("API_BASE_URL", "http://api.local/")
		t.Setenv("API_TIMEOUT", "3s")
		t.Setenv("API_RATE_LIMIT", "5")
		t.Setenv("API_RATE_BURST", "7")
		t.Setenv("POLL_INTERVAL", "1m")
		t.Setenv("LEDGER_BACKEND", "redis")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("CORS_ORIGINS", "https://admin.example.com")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "http://api.local", cfg.APIBaseURL)
		assert.Equal(t, 3*time.Second, cfg.APITimeout)
		assert.Equal(t, 5.0, cfg.APIRateLimit)
		assert.Equal(t, 7, cfg.APIRateBurst)
		assert.Equal(t, time.Minute, cfg.PollInterval)
		assert.Equal(t, "redis", cfg.LedgerBackend)
		assert.Equal(t, "cache:6379", cfg.RedisAddr)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, []string{"https://admin.example.com"}, cfg.CORSOrigins)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.local")
		t.Setenv("API_TIMEOUT", "garbage")
		t.Setenv("LEDGER_BACKEND", "")
		t.Setenv("POLL_INTERVAL", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 15*time.Second, cfg.APITimeout)
		assert.Equal(t, 30*time.Second, cfg.PollInterval)
		assert.Equal(t, "memory", cfg.LedgerBackend)
	})

	t.Run("MissingBaseURL", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")

		_, err := Load()
		assert.EqualError(t, err, "API_BASE_URL is not set")
	})

	t.Run("PostgresLedgerNeedsDB", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.local")
		t.Setenv("LEDGER_BACKEND", "postgres")
		t.Setenv("DB_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("UnknownLedger", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.local")
		t.Setenv("LEDGER_BACKEND", "etcd")

		_, err := Load()
		assert.Error(t, err)
	})
}
