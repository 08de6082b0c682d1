package domain

// BridgeTransaction is the normalized, display-ready record derived from
// exactly one RawMessage. It is immutable after normalization; aggregation
// only reads and folds.
type BridgeTransaction struct {
	ID               string  `json:"id"`
	Timestamp        int64   `json:"timestamp"` // Unix ms
	SourceChain      string  `json:"sourceChain"`
	DestinationChain string  `json:"destinationChain"`
	Asset            string  `json:"asset"`  // canonical symbol or AssetUnknown, never empty
	Amount           string  `json:"amount"` // decimal string
	USDValue         float64 `json:"usdValue"`
	Status           string  `json:"status"`
	TxHash           string  `json:"txHash"`
	BridgeProtocol   string  `json:"bridgeProtocol"`
}

// AssetUnknown is the asset symbol used when no inference candidate exists.
const AssetUnknown = "Unknown"

// Transaction status values passed through from the explorer.
const (
	StatusDelivered = "delivered"
	StatusPending   = "pending"
	StatusFailed    = "failed"
)

// Bridge protocol tags.
const (
	ProtocolHyperlane = "hyperlane"
	ProtocolDeBridge  = "debridge"
)
