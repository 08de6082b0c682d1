package ingestion

import (
	"context"

	"hyperliquid-bridge-lab/internal/domain"
	"hyperliquid-bridge-lab/internal/explorer"
)

// Source provides pages of raw bridge messages from an external explorer.
type Source interface {
	// Messages returns one page for the given query. Pages may overlap
	// across directional queries; the Ingestor deduplicates by message ID.
	Messages(ctx context.Context, q explorer.MessagesQuery) ([]*domain.RawMessage, error)
}
