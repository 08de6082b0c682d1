package registry

import (
	"sync"
	"testing"
)

func TestSets_AddAndList(t *testing.T) {
	s := NewSets()
	s.AddAsset("WETH")
	s.AddAsset("USDC")
	s.AddAsset("WETH") // duplicate
	s.AddChain("Ethereum")
	s.AddChain("Hyperliquid")

	assets := s.Assets()
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %v", assets)
	}
	// Sorted output.
	if assets[0] != "USDC" || assets[1] != "WETH" {
		t.Errorf("expected sorted [USDC WETH], got %v", assets)
	}

	chains := s.Chains()
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %v", chains)
	}
	if chains[0] != "Ethereum" || chains[1] != "Hyperliquid" {
		t.Errorf("expected sorted [Ethereum Hyperliquid], got %v", chains)
	}
}

func TestSets_IgnoresEmpty(t *testing.T) {
	s := NewSets()
	s.AddAsset("")
	s.AddChain("")
	if len(s.Assets()) != 0 || len(s.Chains()) != 0 {
		t.Errorf("empty entries recorded: assets=%v chains=%v", s.Assets(), s.Chains())
	}
}

func TestSets_ConcurrentAdds(t *testing.T) {
	s := NewSets()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddAsset("USDC")
			s.AddChain("Solana")
			_ = s.Assets()
		}()
	}
	wg.Wait()

	if got := s.Assets(); len(got) != 1 || got[0] != "USDC" {
		t.Errorf("expected [USDC], got %v", got)
	}
}
