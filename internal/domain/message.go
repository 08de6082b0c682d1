package domain

// RawMessage is one bridge event as returned by the explorer messages API.
// Everything except ID is best-effort: chain identifiers arrive as numeric
// strings, lowercase slugs or free-form names, and the body format is not
// guaranteed.
type RawMessage struct {
	ID          string `json:"id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Body        string `json:"body,omitempty"`
	Timestamp   int64  `json:"timestamp,omitempty"` // Unix ms, 0 = absent
	Status      string `json:"status,omitempty"`
	TxHash      string `json:"transactionHash,omitempty"`
}

// Valid reports whether the message is well-formed enough to normalize.
// Messages failing this check are dropped at the ingestion boundary
// instead of being synthesized into placeholder transactions.
func (m *RawMessage) Valid() bool {
	return m != nil && m.ID != ""
}
