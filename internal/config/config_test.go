package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShop_Defaults(t *testing.T) {
	cfg, err := LoadShop()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, SourceRemote, cfg.CatalogSource)
	assert.Equal(t, "https://fakestoreapi.com", cfg.CatalogURL)
	assert.Equal(t, 3*time.Second, cfg.CatalogTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 120, cfg.CartRateLimit)
	assert.Equal(t, time.Minute, cfg.CartRateWindow)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTTL)
	assert.Equal(t, 100000, cfg.MaxSessions)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadShop_FromEnv(t *testing.T) {
	t.Setenv("SHOP_HTTP_PORT", "9000")
	t.Setenv("CATALOG_SOURCE", "memory")
	t.Setenv("CATALOG_TIMEOUT", "750ms")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("CART_RATE_LIMIT", "0")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("SESSION_IDLE_TTL", "30m")
	t.Setenv("SESSION_MAX", "10")

	cfg, err := LoadShop()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, SourceMemory, cfg.CatalogSource)
	assert.Equal(t, 750*time.Millisecond, cfg.CatalogTimeout)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 0, cfg.CartRateLimit)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 10, cfg.MaxSessions)
}

func TestLoadShop_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port out of range", env: map[string]string{"SHOP_HTTP_PORT": "70000"}},
		{name: "port not a number", env: map[string]string{"SHOP_HTTP_PORT": "http"}},
		{name: "unknown source", env: map[string]string{"CATALOG_SOURCE": "s3"}},
		{name: "postgres without dsn", env: map[string]string{"CATALOG_SOURCE": "postgres"}},
		{name: "zero timeout", env: map[string]string{"CATALOG_TIMEOUT": "0s"}},
		{name: "negative session ttl", env: map[string]string{"SESSION_IDLE_TTL": "-1m"}},
		{name: "negative session max", env: map[string]string{"SESSION_MAX": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadShop()
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	cfg, err := LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.HTTPPort)
	assert.Equal(t, SourceMemory, cfg.Store)

	t.Setenv("CATALOG_STORE", "postgres")
	_, err = LoadCatalog()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/shop")
	cfg, err = LoadCatalog()
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.Store)
}
