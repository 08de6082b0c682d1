// Package stats rolls normalized transactions into aggregate bridge
// statistics. Everything here is a pure function: no I/O, no side
// effects, deterministic output ordering.
package stats

import (
	"sort"
	"strings"
	"time"

	"hyperliquid-bridge-lab/internal/domain"
)

// Compute produces one BridgeStats snapshot over the full transaction
// set. Time series points are tagged with domain.ChainAll.
func Compute(txs []*domain.BridgeTransaction) *domain.BridgeStats {
	return compute(txs, domain.ChainAll)
}

// ComputeForChain produces a snapshot over the transactions touching the
// given chain (as source or destination), tagging series points with it.
func ComputeForChain(txs []*domain.BridgeTransaction, chain string) *domain.BridgeStats {
	return compute(FilterByChain(txs, chain), chain)
}

// FilterByChain returns the transactions with the chain as source or
// destination. Matching is case-insensitive so both display names and
// raw slugs work.
func FilterByChain(txs []*domain.BridgeTransaction, chain string) []*domain.BridgeTransaction {
	var filtered []*domain.BridgeTransaction
	for _, tx := range txs {
		if strings.EqualFold(tx.SourceChain, chain) || strings.EqualFold(tx.DestinationChain, chain) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

func compute(txs []*domain.BridgeTransaction, chainTag string) *domain.BridgeStats {
	totalValue := 0.0
	assets := make(map[string]struct{})
	chains := make(map[string]struct{})

	for _, tx := range txs {
		totalValue += tx.USDValue
		assets[tx.Asset] = struct{}{}
		chains[tx.SourceChain] = struct{}{}
		chains[tx.DestinationChain] = struct{}{}
	}

	return &domain.BridgeStats{
		TotalValueLocked:  totalValue,
		TotalTransactions: len(txs),
		UniqueAssets:      len(assets),
		ActiveChains:      len(chains),
		TimeSeriesData:    TimeSeries(txs, chainTag),
		ChainStats:        chainSummaries(txs, chains),
	}
}

// chainSummaries computes the per-chain breakdown, sorted by chain name.
func chainSummaries(txs []*domain.BridgeTransaction, chains map[string]struct{}) []domain.ChainStats {
	summaries := make([]domain.ChainStats, 0, len(chains))
	for chain := range chains {
		touching := FilterByChain(txs, chain)

		chainAssets := make(map[string]struct{})
		value := 0.0
		for _, tx := range touching {
			chainAssets[tx.Asset] = struct{}{}
			value += tx.USDValue
		}

		activeAssets := make([]string, 0, len(chainAssets))
		for a := range chainAssets {
			activeAssets = append(activeAssets, a)
		}
		sort.Strings(activeAssets)

		summaries = append(summaries, domain.ChainStats{
			ChainID:           strings.ToLower(chain),
			ChainName:         chain,
			TotalTransactions: len(touching),
			TotalValue:        value,
			ActiveAssets:      activeAssets,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ChainName < summaries[j].ChainName
	})
	return summaries
}

// TimeSeries groups transactions by (UTC day, asset), summing usdValue per
// group, and tags every point with the given chain. One point is emitted
// per non-empty group, sorted by day then asset.
func TimeSeries(txs []*domain.BridgeTransaction, chainTag string) []domain.TimeSeriesPoint {
	buckets := make(map[int64]map[string]float64)
	for _, tx := range txs {
		day := DayStart(tx.Timestamp)
		if buckets[day] == nil {
			buckets[day] = make(map[string]float64)
		}
		buckets[day][tx.Asset] += tx.USDValue
	}

	points := make([]domain.TimeSeriesPoint, 0, len(buckets))
	for day, byAsset := range buckets {
		for asset, value := range byAsset {
			points = append(points, domain.TimeSeriesPoint{
				Timestamp: day,
				Value:     value,
				Chain:     chainTag,
				Asset:     asset,
			})
		}
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Timestamp != points[j].Timestamp {
			return points[i].Timestamp < points[j].Timestamp
		}
		return points[i].Asset < points[j].Asset
	})
	return points
}

// DayStart truncates a Unix ms timestamp to its UTC day boundary.
func DayStart(unixMilli int64) int64 {
	t := time.UnixMilli(unixMilli).UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.UnixMilli()
}
