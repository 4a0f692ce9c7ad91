package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	SourceRemote   = "remote"
	SourceMemory   = "memory"
	SourcePostgres = "postgres"
)

// Shop configures cmd/shop.
type Shop struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort int    `env:"SHOP_HTTP_PORT" envDefault:"8080"`

	CatalogSource  string        `env:"CATALOG_SOURCE" envDefault:"remote"`
	CatalogURL     string        `env:"CATALOG_URL" envDefault:"https://fakestoreapi.com"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"3s"`
	DatabaseURL    string        `env:"DATABASE_URL"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsToken   string `env:"METRICS_TOKEN"`

	CartRateLimit  int           `env:"CART_RATE_LIMIT" envDefault:"120"`
	CartRateWindow time.Duration `env:"CART_RATE_WINDOW" envDefault:"1m"`
	TrustProxy     bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"24h"`
	MaxSessions    int           `env:"SESSION_MAX" envDefault:"100000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Catalog configures cmd/catalog.
type Catalog struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort int    `env:"CATALOG_HTTP_PORT" envDefault:"8082"`

	Store       string `env:"CATALOG_STORE" envDefault:"memory"`
	DatabaseURL string `env:"DATABASE_URL"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	MetricsToken   string `env:"METRICS_TOKEN"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadShop() (*Shop, error) {
	cfg := &Shop{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load shop config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadCatalog() (*Catalog, error) {
	cfg := &Catalog{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Shop) Addr() string    { return fmt.Sprintf(":%d", c.HTTPPort) }
func (c *Catalog) Addr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

func (c *Shop) validate() error {
	if err := validatePort(c.HTTPPort); err != nil {
		return err
	}
	switch c.CatalogSource {
	case SourceRemote:
		if c.CatalogURL == "" {
			return fmt.Errorf("CATALOG_URL is required for source %q", c.CatalogSource)
		}
	case SourceMemory:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for source %q", c.CatalogSource)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.CatalogTimeout <= 0 {
		return fmt.Errorf("invalid CATALOG_TIMEOUT: %s", c.CatalogTimeout)
	}
	if c.CartRateLimit > 0 && c.CartRateWindow <= 0 {
		return fmt.Errorf("invalid CART_RATE_WINDOW: %s", c.CartRateWindow)
	}
	if c.SessionIdleTTL < 0 {
		return fmt.Errorf("invalid SESSION_IDLE_TTL: %s", c.SessionIdleTTL)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("invalid SESSION_MAX: %d", c.MaxSessions)
	}
	return nil
}

func (c *Catalog) validate() error {
	if err := validatePort(c.HTTPPort); err != nil {
		return err
	}
	switch c.Store {
	case SourceMemory:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for store %q", c.Store)
		}
	default:
		return fmt.Errorf("unknown CATALOG_STORE %q", c.Store)
	}
	return nil
}

func validatePort(p int) error {
	if p < 1 || p > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", p)
	}
	return nil
}
