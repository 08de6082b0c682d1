package domain

// Snapshot is one timeframe-scoped read result handed to the presentation
// layer. Transactions and Stats are always non-empty and mutually
// consistent: when the upstream fetch failed entirely, both are computed
// from the synthetic fallback dataset and Degraded is set.
type Snapshot struct {
	Timeframe    Timeframe            `json:"timeframe"`
	Chain        string               `json:"chain,omitempty"`
	Transactions []*BridgeTransaction `json:"transactions"`
	Stats        *BridgeStats         `json:"stats"`
	Degraded     bool                 `json:"degraded"`
	FetchError   string               `json:"fetchError,omitempty"`
	FetchedAt    int64                `json:"fetchedAt"` // Unix ms
}
