// Package registry tracks every asset symbol and chain name the pipeline
// has ever emitted. The sets are append-only and process-lifetime scoped;
// they exist so the presentation layer can offer filters wider than the
// static lookup tables.
package registry

import (
	"sort"
	"sync"
)

// Sets holds the discovered asset and chain sets. Safe for concurrent use.
type Sets struct {
	mu     sync.RWMutex
	assets map[string]struct{}
	chains map[string]struct{}
}

// NewSets creates empty discovered sets. Callers seed them with their
// static defaults (the normalization engine does this on construction).
func NewSets() *Sets {
	return &Sets{
		assets: make(map[string]struct{}),
		chains: make(map[string]struct{}),
	}
}

// AddAsset records an asset symbol. Empty symbols are ignored.
func (s *Sets) AddAsset(symbol string) {
	if symbol == "" {
		return
	}
	s.mu.Lock()
	s.assets[symbol] = struct{}{}
	s.mu.Unlock()
}

// AddChain records a chain name. Empty names are ignored.
func (s *Sets) AddChain(name string) {
	if name == "" {
		return
	}
	s.mu.Lock()
	s.chains[name] = struct{}{}
	s.mu.Unlock()
}

// Assets returns all recorded asset symbols, sorted.
func (s *Sets) Assets() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.assets)
}

// Chains returns all recorded chain names, sorted.
func (s *Sets) Chains() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.chains)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
