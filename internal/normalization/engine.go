// Package normalization converts raw bridge messages into canonical,
// display-ready transactions. Asset and amount inference is a
// confidence-ranked candidate scan over the opaque message body; the
// most specific signal (an on-chain address match) wins over the weakest
// (a route heuristic).
package normalization

import (
	"log"
	"time"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/observability"
	"hyperliquid-bridge-lab/internal/registry"
)

// Engine normalizes raw messages. Safe for concurrent use: the tables are
// read-only and the registry synchronizes internally.
type Engine struct {
	tables Tables
	sets   *registry.Sets
	now    func() time.Time
	logger *log.Logger
}

// EngineOptions configures an Engine. Zero fields take defaults.
type EngineOptions struct {
	Tables   *Tables        // nil selects DefaultTables
	Registry *registry.Sets // nil creates a fresh registry
	Now      func() time.Time
	Logger   *log.Logger
}

// NewEngine creates an engine and seeds the discovered-sets registry with
// the static symbol and chain tables.
func NewEngine(opts EngineOptions) *Engine {
	tables := DefaultTables()
	if opts.Tables != nil {
		tables = *opts.Tables
	}
	sets := opts.Registry
	if sets == nil {
		sets = registry.NewSets()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	for _, symbol := range tables.Symbols {
		sets.AddAsset(symbol)
	}
	for _, name := range tables.ChainSlugNames {
		sets.AddChain(name)
	}

	return &Engine{tables: tables, sets: sets, now: now, logger: logger}
}

// Registry returns the discovered-sets registry the engine records into.
func (e *Engine) Registry() *registry.Sets {
	return e.sets
}

// Tables returns the engine's lookup tables.
func (e *Engine) Tables() Tables {
	return e.tables
}

// NormalizeMessage maps one raw message to one transaction. Structurally
// invalid messages return nil and are counted as dropped; any inference
// failure degrades that message to Unknown/"1" instead of erroring.
func (e *Engine) NormalizeMessage(m *domain.RawMessage) *domain.BridgeTransaction {
	if !m.Valid() {
		observability.RecordMessageDropped()
		return nil
	}

	asset, amount := e.inferAssetAmount(m)

	timestamp := m.Timestamp
	if timestamp <= 0 {
		timestamp = e.now().UnixMilli()
	}

	source := CanonicalChainName(m.Origin, e.tables)
	destination := CanonicalChainName(m.Destination, e.tables)

	tx := &domain.BridgeTransaction{
		ID:               m.ID,
		Timestamp:        timestamp,
		SourceChain:      source,
		DestinationChain: destination,
		Asset:            asset,
		Amount:           amount,
		USDValue:         ParseAmount(amount) * e.tables.PriceFor(asset),
		Status:           m.Status,
		TxHash:           m.TxHash,
		BridgeProtocol:   domain.ProtocolHyperlane,
	}

	e.sets.AddAsset(asset)
	e.sets.AddChain(source)
	e.sets.AddChain(destination)

	observability.RecordNormalized()
	if asset == domain.AssetUnknown {
		observability.RecordUnknownAsset()
	}
	return tx
}

// NormalizeBatch maps a message batch, dropping invalid entries.
func (e *Engine) NormalizeBatch(msgs []*domain.RawMessage) []*domain.BridgeTransaction {
	txs := make([]*domain.BridgeTransaction, 0, len(msgs))
	for _, m := range msgs {
		if tx := e.NormalizeMessage(m); tx != nil {
			txs = append(txs, tx)
		}
	}
	return txs
}

// inferAssetAmount runs the candidate scan with panic containment: a
// failure inside inference degrades this message only, never the batch.
func (e *Engine) inferAssetAmount(m *domain.RawMessage) (asset, amount string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("asset inference failed for message %s: %v", m.ID, r)
			asset, amount = domain.AssetUnknown, "1"
		}
	}()

	cands := ScanCandidates(m.Body, m.Origin, m.Destination, e.tables)
	best, ok := BestCandidate(cands)
	if !ok {
		return domain.AssetUnknown, "1"
	}
	observability.RecordCandidate(best.Method)
	return best.Symbol, best.Amount
}
