// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all tunables. Every field has a working default so the
// service starts with no environment at all.
type Config struct {
	ExplorerBaseURL string        `envconfig:"EXPLORER_BASE_URL" default:"https://explorer.hyperlane.xyz/api"`
	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":8080"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:":9090"`
	ChainFilter     string        `envconfig:"CHAIN_FILTER" default:"hyperliquid"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"60s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
	PageSize        int           `envconfig:"PAGE_SIZE" default:"100"`
	PageDelay       time.Duration `envconfig:"PAGE_DELAY" default:"200ms"`
	MaxRetries      int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryDelay      time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	CacheTTL        time.Duration `envconfig:"CACHE_TTL" default:"30s"`
}

// Load reads BRIDGE_-prefixed environment variables. A .env file in the
// working directory is loaded first if present; a missing file is not an
// error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("BRIDGE", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
