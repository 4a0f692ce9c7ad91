package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/catalog"
	"MiniCart/internal/config"
	"MiniCart/internal/shop"
	"MiniCart/pkg/kit"
)

const service = "shop"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadShop()
	if err != nil {
		return err
	}

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var src catalog.Source
	switch cfg.CatalogSource {
	case config.SourceMemory:
		src = catalog.NewMemStore(catalog.SeedProducts()...)
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("open postgres pool failed", zap.Error(err))
			return fmt.Errorf("open postgres pool: %w", err)
		}
		defer pool.Close()
		src = catalog.NewPostgresStore(pool)
	default:
		src = catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout, catalog.DefaultBreakerSettings(), log)
	}
	log.Info("catalog source", zap.String("source", cfg.CatalogSource))

	s := &shop.Server{
		Catalog: src,
		Sessions: cart.NewSessions(cart.SessionLimits{
			IdleTTL: cfg.SessionIdleTTL,
			Max:     cfg.MaxSessions,
		}),
		Log: log,
	}

	h := shop.NewHandler(s, shop.HTTPDeps{
		Log:               log,
		Service:           service,
		Registry:          prometheus.NewRegistry(),
		MetricsEnabled:    cfg.MetricsEnabled,
		MetricsToken:      cfg.MetricsToken,
		CartRateLimit:     cfg.CartRateLimit,
		CartRateWindow:    cfg.CartRateWindow,
		TrustProxyHeaders: cfg.TrustProxy,
	})

	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, log, cfg.ShutdownTimeout); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return err
	}
	return nil
}
