// Package ingestion fetches raw bridge messages for a time window,
// handling pagination, directional chain filters and deduplication.
package ingestion

import (
	"context"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/explorer"
	"hyperliquid-bridge-lab/internal/observability"
)

// Default configuration values.
const (
	DefaultPageSize  = 100
	MaxPageSize      = 250
	DefaultPageDelay = 200 * time.Millisecond
	DefaultMaxPages  = 20
	DefaultStatus    = domain.StatusDelivered
)

// Ingestor retrieves a complete, deduplicated message set for a window.
type Ingestor struct {
	source    Source
	pageSize  int
	pageDelay time.Duration
	maxPages  int
	status    string
	now       func() time.Time
	logger    *log.Logger
}

// Options configures an Ingestor. Zero fields take defaults.
type Options struct {
	Source    Source
	PageSize  int           // page limit per request (default 100, capped at 250)
	PageDelay time.Duration // inter-page delay to respect rate limits
	MaxPages  int           // safety cap per sub-query
	Status    string        // message status filter
	Now       func() time.Time
	Logger    *log.Logger
}

// NewIngestor creates an ingestor.
func NewIngestor(opts Options) *Ingestor {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	pageDelay := opts.PageDelay
	if pageDelay <= 0 {
		pageDelay = DefaultPageDelay
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	status := opts.Status
	if status == "" {
		status = DefaultStatus
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Ingestor{
		source:    opts.Source,
		pageSize:  pageSize,
		pageDelay: pageDelay,
		maxPages:  maxPages,
		status:    status,
		now:       now,
		logger:    logger,
	}
}

// ClampFrom rejects clearly-invalid future window starts: any fromTimestamp
// later than now is replaced with now minus 24 hours.
func ClampFrom(from, now int64) int64 {
	if from > now {
		return now - int64(24*time.Hour/time.Millisecond)
	}
	return from
}

// Fetch returns every message in the window starting at fromTimestamp,
// deduplicated by ID. With a chain filter both directions (transfers into
// and out of the chain) are queried and unioned. Sub-query failures end
// that sub-query with whatever was accumulated; total failure yields an
// empty slice, never an error.
func (in *Ingestor) Fetch(ctx context.Context, fromTimestamp int64, chainFilter string) []*domain.RawMessage {
	from := ClampFrom(fromTimestamp, in.now().UnixMilli())

	base := explorer.MessagesQuery{
		FromTimestamp: from,
		Status:        in.status,
		Limit:         in.pageSize,
		OrderBy:       "timestamp",
		Order:         "desc",
	}

	queries := []explorer.MessagesQuery{base}
	if chainFilter != "" {
		inbound := base
		inbound.Destination = chainFilter
		outbound := base
		outbound.Origin = chainFilter
		queries = []explorer.MessagesQuery{inbound, outbound}
	}

	// Directional queries target disjoint filters; run them concurrently
	// and merge only after all of them settle.
	results := make([][]*domain.RawMessage, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			results[i] = in.paginate(ctx, q)
			return nil
		})
	}
	g.Wait()

	byID := make(map[string]*domain.RawMessage)
	dropped := 0
	for _, msgs := range results {
		for _, m := range msgs {
			if !m.Valid() {
				continue
			}
			if _, seen := byID[m.ID]; seen {
				dropped++
			}
			byID[m.ID] = m // last write wins, fields are expected stable
		}
	}
	if dropped > 0 {
		observability.RecordDuplicatesDropped(dropped)
	}

	merged := make([]*domain.RawMessage, 0, len(byID))
	for _, m := range byID {
		merged = append(merged, m)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Timestamp != merged[j].Timestamp {
			return merged[i].Timestamp > merged[j].Timestamp
		}
		return merged[i].ID < merged[j].ID
	})

	observability.RecordMessagesFetched(len(merged))
	return merged
}

// paginate advances the offset until a short page, an error, or the page
// cap. Failures are logged and end the sub-query with partial results.
func (in *Ingestor) paginate(ctx context.Context, q explorer.MessagesQuery) []*domain.RawMessage {
	var accumulated []*domain.RawMessage

	for page := 0; page < in.maxPages; page++ {
		q.Offset = page * in.pageSize

		msgs, err := in.source.Messages(ctx, q)
		if err != nil {
			in.logger.Printf("sub-query (origin=%q destination=%q) stopped at offset %d: %v",
				q.Origin, q.Destination, q.Offset, err)
			observability.RecordPageError()
			break
		}
		observability.RecordPageFetched()
		accumulated = append(accumulated, msgs...)

		if len(msgs) < in.pageSize {
			break
		}

		select {
		case <-ctx.Done():
			return accumulated
		case <-time.After(in.pageDelay):
		}
	}

	return accumulated
}
