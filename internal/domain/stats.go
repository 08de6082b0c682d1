package domain

// ChainAll tags time series points aggregated across every chain.
const ChainAll = "all"

// TimeSeriesPoint is the USD value bridged for one (UTC day, asset) group.
// Multiple transactions fold into one point via summation.
type TimeSeriesPoint struct {
	Timestamp int64   `json:"timestamp"` // UTC day start, Unix ms
	Value     float64 `json:"value"`     // summed usdValue
	Chain     string  `json:"chain"`
	Asset     string  `json:"asset"`
}

// ChainStats summarizes activity touching one chain as source or destination.
type ChainStats struct {
	ChainID           string   `json:"chainId"`
	ChainName         string   `json:"chainName"`
	TotalTransactions int      `json:"totalTransactions"`
	TotalValue        float64  `json:"totalValue"`
	ActiveAssets      []string `json:"activeAssets"` // sorted, distinct
}

// BridgeStats is one aggregate snapshot over a transaction set.
//
// Invariants: ActiveChains == len(ChainStats); UniqueAssets equals the
// number of distinct Asset values across the set.
type BridgeStats struct {
	TotalValueLocked  float64           `json:"totalValueLocked"`
	TotalTransactions int               `json:"totalTransactions"`
	UniqueAssets      int               `json:"uniqueAssets"`
	ActiveChains      int               `json:"activeChains"`
	TimeSeriesData    []TimeSeriesPoint `json:"timeSeriesData"`
	ChainStats        []ChainStats      `json:"chainStats"`
}
