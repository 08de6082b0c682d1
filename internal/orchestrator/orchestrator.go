// Package orchestrator coordinates the read pipeline:
// ingestion → normalization → aggregation, behind timeframe-scoped,
// cacheable snapshot reads with bounded retry and a mandatory non-empty
// result.
package orchestrator

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/ingestion"
	"hyperliquid-bridge-lab/internal/normalization"
	"hyperliquid-bridge-lab/internal/observability"
	"hyperliquid-bridge-lab/internal/retry"
	"hyperliquid-bridge-lab/internal/stats"
)

// ErrNoMessages indicates a fetch attempt retrieved nothing; it drives
// the retry loop and, on exhaustion, the fallback substitution. It never
// escapes Snapshot.
var ErrNoMessages = errors.New("no messages retrieved")

// DefaultCacheTTL matches the presentation layer's refresh cadence.
const DefaultCacheTTL = 30 * time.Second

// Orchestrator serves consistent snapshots to the presentation layer.
type Orchestrator struct {
	ingestor *ingestion.Ingestor
	engine   *normalization.Engine
	policy   retry.Policy
	cacheTTL time.Duration
	now      func() time.Time
	logger   *log.Logger

	mu    sync.Mutex
	cache map[string]*domain.Snapshot
}

// Options configures an Orchestrator. Zero fields take defaults.
type Options struct {
	Ingestor *ingestion.Ingestor
	Engine   *normalization.Engine
	Policy   retry.Policy  // retry policy for whole-window fetches
	CacheTTL time.Duration // snapshot cache TTL; negative disables caching
	Now      func() time.Time
	Logger   *log.Logger
}

// New creates an orchestrator.
func New(opts Options) *Orchestrator {
	cacheTTL := opts.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = DefaultCacheTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		ingestor: opts.Ingestor,
		engine:   opts.Engine,
		policy:   opts.Policy,
		cacheTTL: cacheTTL,
		now:      now,
		logger:   logger,
		cache:    make(map[string]*domain.Snapshot),
	}
}

// Snapshot returns the transactions and stats for a timeframe, optionally
// scoped to one chain (display name or raw identifier). The result is
// always non-empty and internally consistent; upstream failure is exposed
// only through Degraded and FetchError. The only returned error is
// context cancellation.
func (o *Orchestrator) Snapshot(ctx context.Context, tf domain.Timeframe, chain string) (*domain.Snapshot, error) {
	key := string(tf) + "|" + chain

	if snap := o.cached(key); snap != nil {
		observability.RecordCacheHit()
		return snap, nil
	}

	started := o.now()
	chainFilter := ""
	if chain != "" {
		chainFilter = normalization.ChainQueryID(chain, o.engine.Tables())
	}
	from := started.Add(-tf.Duration()).UnixMilli()

	var msgs []*domain.RawMessage
	err := retry.Do(ctx, o.policy, func(ctx context.Context) error {
		msgs = o.ingestor.Fetch(ctx, from, chainFilter)
		if len(msgs) == 0 {
			return ErrNoMessages
		}
		return nil
	})
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	txs := o.engine.NormalizeBatch(msgs)

	degraded := false
	fetchError := ""
	if len(txs) == 0 {
		// Total data unavailability must never surface as "no data":
		// substitute the synthetic dataset and flag the snapshot.
		degraded = true
		if err != nil {
			fetchError = err.Error()
		} else {
			fetchError = ErrNoMessages.Error()
		}
		o.logger.Printf("substituting fallback dataset for timeframe %s (chain %q): %s", tf, chain, fetchError)
		txs = o.engine.FallbackTransactions(tf, chainFilter)
	}

	var aggregate *domain.BridgeStats
	if chain != "" {
		aggregate = stats.ComputeForChain(txs, normalization.CanonicalChainName(chain, o.engine.Tables()))
	} else {
		aggregate = stats.Compute(txs)
	}

	snap := &domain.Snapshot{
		Timeframe:    tf,
		Chain:        chain,
		Transactions: txs,
		Stats:        aggregate,
		Degraded:     degraded,
		FetchError:   fetchError,
		FetchedAt:    o.now().UnixMilli(),
	}

	observability.RecordSnapshot(string(tf), degraded, o.now().Sub(started).Seconds())
	if !degraded {
		observability.RecordSuccessfulFetch(o.now().Unix())
	}
	reg := o.engine.Registry()
	observability.UpdateRegistrySizes(len(reg.Assets()), len(reg.Chains()))

	o.store(key, snap)
	return snap, nil
}

// cached returns a fresh cache entry or nil.
func (o *Orchestrator) cached(key string) *domain.Snapshot {
	if o.cacheTTL < 0 {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	snap, ok := o.cache[key]
	if !ok {
		return nil
	}
	age := o.now().UnixMilli() - snap.FetchedAt
	if age > o.cacheTTL.Milliseconds() {
		delete(o.cache, key)
		return nil
	}
	return snap
}

func (o *Orchestrator) store(key string, snap *domain.Snapshot) {
	if o.cacheTTL < 0 {
		return
	}
	o.mu.Lock()
	o.cache[key] = snap
	o.mu.Unlock()
}
