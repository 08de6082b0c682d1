package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.ExplorerBaseURL != "https://explorer.hyperlane.xyz/api" {
		t.Errorf("ExplorerBaseURL = %q", cfg.ExplorerBaseURL)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.ChainFilter != "hyperliquid" {
		t.Errorf("ChainFilter = %q", cfg.ChainFilter)
	}
	if cfg.RefreshInterval != 60*time.Second {
		t.Errorf("RefreshInterval = %v", cfg.RefreshInterval)
	}
	if cfg.PageSize != 100 {
		t.Errorf("PageSize = %d", cfg.PageSize)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d", cfg.MaxRetries)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BRIDGE_LISTEN_ADDR", ":9999")
	t.Setenv("BRIDGE_CHAIN_FILTER", "solana")
	t.Setenv("BRIDGE_CACHE_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.ChainFilter != "solana" {
		t.Errorf("ChainFilter = %q", cfg.ChainFilter)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("BRIDGE_REFRESH_INTERVAL", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unparseable duration")
	}
}
