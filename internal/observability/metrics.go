// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Ingestion metrics
	MessagesFetched   prometheus.Counter
	PagesFetched      prometheus.Counter
	PageErrors        prometheus.Counter
	DuplicatesDropped prometheus.Counter

	// Normalization metrics
	MessagesNormalized  prometheus.Counter
	UnknownAssets       prometheus.Counter
	CandidatesByMethod  *prometheus.CounterVec
	FallbacksGenerated  prometheus.Counter
	MessagesDropped     prometheus.Counter

	// Orchestration metrics
	SnapshotsServed  *prometheus.CounterVec
	SnapshotLatency  prometheus.Histogram
	SnapshotCacheHit prometheus.Counter

	// Registry metrics
	DiscoveredAssets prometheus.Gauge
	DiscoveredChains prometheus.Gauge

	// Health metrics
	LastSuccessfulFetch prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "hyperliquid_bridge_lab"
	}

	return &Metrics{
		MessagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "messages_fetched_total",
			Help:      "Total number of deduplicated messages fetched",
		}),
		PagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "pages_fetched_total",
			Help:      "Total number of explorer pages fetched",
		}),
		PageErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "page_errors_total",
			Help:      "Total number of failed page requests",
		}),
		DuplicatesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingestion",
			Name:      "duplicates_dropped_total",
			Help:      "Total number of duplicate message IDs merged away",
		}),

		MessagesNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "messages_normalized_total",
			Help:      "Total number of messages normalized into transactions",
		}),
		UnknownAssets: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "unknown_assets_total",
			Help:      "Total number of transactions with no asset candidate",
		}),
		CandidatesByMethod: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "candidates_total",
			Help:      "Asset candidates recorded by inference method",
		}, []string{"method"}),
		FallbacksGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "fallback_datasets_total",
			Help:      "Total number of synthetic fallback datasets generated",
		}),
		MessagesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "normalization",
			Name:      "messages_dropped_total",
			Help:      "Total number of structurally invalid messages dropped",
		}),

		SnapshotsServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orchestrator",
			Name:      "snapshots_served_total",
			Help:      "Snapshots served by timeframe and degradation state",
		}, []string{"timeframe", "degraded"}),
		SnapshotLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "orchestrator",
			Name:      "snapshot_duration_seconds",
			Help:      "Time to produce a snapshot (fetch + normalize + aggregate)",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		SnapshotCacheHit: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orchestrator",
			Name:      "snapshot_cache_hits_total",
			Help:      "Snapshots served from the TTL cache",
		}),

		DiscoveredAssets: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "discovered_assets",
			Help:      "Number of distinct asset symbols ever seen",
		}),
		DiscoveredChains: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "discovered_chains",
			Help:      "Number of distinct chain names ever seen",
		}),

		LastSuccessfulFetch: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_fetch_timestamp",
			Help:      "Unix timestamp of the last non-degraded snapshot",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordMessagesFetched adds to the deduplicated message counter.
func RecordMessagesFetched(n int) {
	DefaultMetrics.MessagesFetched.Add(float64(n))
}

// RecordPageFetched increments the page counter.
func RecordPageFetched() {
	DefaultMetrics.PagesFetched.Inc()
}

// RecordPageError increments the failed page counter.
func RecordPageError() {
	DefaultMetrics.PageErrors.Inc()
}

// RecordDuplicatesDropped adds to the duplicate counter.
func RecordDuplicatesDropped(n int) {
	DefaultMetrics.DuplicatesDropped.Add(float64(n))
}

// RecordNormalized increments the normalized message counter.
func RecordNormalized() {
	DefaultMetrics.MessagesNormalized.Inc()
}

// RecordUnknownAsset increments the unknown asset counter.
func RecordUnknownAsset() {
	DefaultMetrics.UnknownAssets.Inc()
}

// RecordCandidate records an asset candidate by inference method.
func RecordCandidate(method string) {
	DefaultMetrics.CandidatesByMethod.WithLabelValues(method).Inc()
}

// RecordFallbackDataset increments the synthetic dataset counter.
func RecordFallbackDataset() {
	DefaultMetrics.FallbacksGenerated.Inc()
}

// RecordMessageDropped increments the dropped message counter.
func RecordMessageDropped() {
	DefaultMetrics.MessagesDropped.Inc()
}

// RecordSnapshot records a served snapshot.
func RecordSnapshot(timeframe string, degraded bool, seconds float64) {
	state := "false"
	if degraded {
		state = "true"
	}
	DefaultMetrics.SnapshotsServed.WithLabelValues(timeframe, state).Inc()
	DefaultMetrics.SnapshotLatency.Observe(seconds)
}

// RecordCacheHit increments the snapshot cache hit counter.
func RecordCacheHit() {
	DefaultMetrics.SnapshotCacheHit.Inc()
}

// UpdateRegistrySizes updates the discovered set gauges.
func UpdateRegistrySizes(assets, chains int) {
	DefaultMetrics.DiscoveredAssets.Set(float64(assets))
	DefaultMetrics.DiscoveredChains.Set(float64(chains))
}

// RecordSuccessfulFetch updates the last successful fetch timestamp.
func RecordSuccessfulFetch(unixSeconds int64) {
	DefaultMetrics.LastSuccessfulFetch.Set(float64(unixSeconds))
}
