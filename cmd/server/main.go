// Package main runs the bridge activity service: a background refresh
// loop keeping snapshots warm, the read-side HTTP API, and a Prometheus
// metrics endpoint.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hyperliquid-bridge-lab/internal/config"
	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/explorer"
	"hyperliquid-bridge-lab/internal/ingestion"
	"hyperliquid-bridge-lab/internal/normalization"
	"hyperliquid-bridge-lab/internal/observability"
	"hyperliquid-bridge-lab/internal/orchestrator"
	"hyperliquid-bridge-lab/internal/registry"
	"hyperliquid-bridge-lab/internal/retry"
	"hyperliquid-bridge-lab/internal/server"
)

// warmTimeframes are kept fresh by the refresh loop.
var warmTimeframes = []string{"24h", "7d", "30d"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Flags override environment configuration.
	listenAddr := flag.String("listen", cfg.ListenAddr, "API listen address")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "Prometheus metrics address")
	explorerURL := flag.String("explorer", cfg.ExplorerBaseURL, "Explorer API base URL")
	chainFilter := flag.String("chain", cfg.ChainFilter, "Chain to track (display name or slug, empty for all)")
	refreshInterval := flag.Duration("refresh-interval", cfg.RefreshInterval, "Snapshot refresh interval")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	policy := retry.Policy{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
	}

	client := explorer.NewClient(*explorerURL,
		explorer.WithTimeout(cfg.RequestTimeout),
		explorer.WithRetryPolicy(policy),
	)

	ingestor := ingestion.NewIngestor(ingestion.Options{
		Source:    client,
		PageSize:  cfg.PageSize,
		PageDelay: cfg.PageDelay,
		Logger:    log.New(os.Stdout, "[ingestion] ", log.LstdFlags),
	})

	sets := registry.NewSets()
	engine := normalization.NewEngine(normalization.EngineOptions{
		Registry: sets,
		Logger:   log.New(os.Stdout, "[normalization] ", log.LstdFlags),
	})

	orch := orchestrator.New(orchestrator.Options{
		Ingestor: ingestor,
		Engine:   engine,
		Policy:   policy,
		CacheTTL: cfg.CacheTTL,
		Logger:   logger,
	})

	api := server.New(orch, sets, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})

	// Handle shutdown signals; a second signal forces immediate exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	// Metrics endpoint.
	metricsSrv := &http.Server{Addr: *metricsAddr, Handler: observability.Handler()}
	go func() {
		logger.Printf("Metrics listening on %s", *metricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("metrics server: %v", err)
		}
	}()

	// API endpoint.
	apiSrv := &http.Server{Addr: *listenAddr, Handler: api.Router()}
	go func() {
		logger.Printf("API listening on %s", *listenAddr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("api server: %v", err)
		}
	}()

	// Refresh loop: warm every timeframe so reads hit the cache.
	go refreshLoop(ctx, orch, *chainFilter, *refreshInterval, logger)

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("api shutdown: %v", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("metrics shutdown: %v", err)
	}

	close(done)
	logger.Println("Shutdown complete")
}

// refreshLoop keeps snapshots warm for all supported timeframes, both
// chain-scoped and global.
func refreshLoop(ctx context.Context, orch *orchestrator.Orchestrator, chain string, interval time.Duration, logger *log.Logger) {
	refresh := func() {
		for _, tf := range warmTimeframes {
			snap, err := orch.Snapshot(ctx, domain.ParseTimeframe(tf), chain)
			if err != nil {
				logger.Printf("refresh %s: %v", tf, err)
				return
			}
			if snap.Degraded {
				logger.Printf("refresh %s: degraded (%s), serving fallback data", tf, snap.FetchError)
			}
		}
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
