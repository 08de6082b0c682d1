package normalization

import (
	"io"
	"log"
	"reflect"
	"testing"
	"time"

	"hyperliquid-bridge-lab/internal/domain"
)

func testEngine() *Engine {
	return NewEngine(EngineOptions{
		Now:    func() time.Time { return time.UnixMilli(1700000000000) },
		Logger: log.New(io.Discard, "", 0),
	})
}

func TestNormalizeMessage_AddressAndAmount(t *testing.T) {
	e := testEngine()
	m := &domain.RawMessage{
		ID:          "msg-1",
		Origin:      "1",
		Destination: "999",
		Body:        wethAddress + " 0x0000000000000000000000000000000000000000000000004563918244f40000",
		Timestamp:   1699999000000,
		Status:      domain.StatusDelivered,
		TxHash:      "0xdeadbeef",
	}

	tx := e.NormalizeMessage(m)

	if tx == nil {
		t.Fatal("expected a transaction")
	}
	if tx.SourceChain != "Ethereum" || tx.DestinationChain != "Hyperliquid" {
		t.Errorf("chains = %s → %s", tx.SourceChain, tx.DestinationChain)
	}
	if tx.Asset != "WETH" || tx.Amount != "5" {
		t.Errorf("asset/amount = %s/%s, want WETH/5", tx.Asset, tx.Amount)
	}
	if tx.USDValue != 15000 {
		t.Errorf("usdValue = %v, want 15000 (5 × 3000)", tx.USDValue)
	}
	if tx.BridgeProtocol != domain.ProtocolHyperlane {
		t.Errorf("protocol = %q", tx.BridgeProtocol)
	}
	if tx.ID != "msg-1" || tx.TxHash != "0xdeadbeef" || tx.Timestamp != 1699999000000 {
		t.Errorf("passthrough fields wrong: %+v", tx)
	}
}

func TestNormalizeMessage_EmptyBodyUsesRoute(t *testing.T) {
	e := testEngine()
	m := &domain.RawMessage{
		ID:          "msg-2",
		Origin:      "solana",
		Destination: "hyperliquid",
		Timestamp:   1699999000000,
	}

	tx := e.NormalizeMessage(m)

	if tx == nil {
		t.Fatal("expected a transaction")
	}
	if tx.Asset != "USDC" || tx.Amount != "1000" {
		t.Errorf("asset/amount = %s/%s, want USDC/1000", tx.Asset, tx.Amount)
	}
	if tx.USDValue != 1000 {
		t.Errorf("usdValue = %v, want 1000", tx.USDValue)
	}
}

func TestNormalizeMessage_NoSignalIsUnknown(t *testing.T) {
	e := testEngine()
	m := &domain.RawMessage{
		ID:          "msg-3",
		Origin:      "zora",
		Destination: "scroll",
		Body:        "nothing recognizable",
		Timestamp:   1699999000000,
	}

	tx := e.NormalizeMessage(m)

	if tx == nil {
		t.Fatal("expected a transaction")
	}
	if tx.Asset != domain.AssetUnknown || tx.Amount != "1" {
		t.Errorf("asset/amount = %s/%s, want Unknown/1", tx.Asset, tx.Amount)
	}
	// Unknown assets price at 1.
	if tx.USDValue != 1 {
		t.Errorf("usdValue = %v, want 1", tx.USDValue)
	}
	if tx.SourceChain != "Zora" || tx.DestinationChain != "Scroll" {
		t.Errorf("chains = %s → %s", tx.SourceChain, tx.DestinationChain)
	}
}

func TestNormalizeMessage_Idempotent(t *testing.T) {
	e := testEngine()
	m := &domain.RawMessage{
		ID:          "msg-4",
		Origin:      "ethereum",
		Destination: "hyperliquid",
		Body:        "bridged USDC",
		Timestamp:   1699999000000,
	}

	first := e.NormalizeMessage(m)
	second := e.NormalizeMessage(m)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalization not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalizeMessage_InvalidReturnsNil(t *testing.T) {
	e := testEngine()
	if tx := e.NormalizeMessage(&domain.RawMessage{Origin: "ethereum"}); tx != nil {
		t.Errorf("expected nil for message without ID, got %+v", tx)
	}
	if tx := e.NormalizeMessage(nil); tx != nil {
		t.Errorf("expected nil for nil message, got %+v", tx)
	}
}

func TestNormalizeMessage_MissingTimestampUsesNow(t *testing.T) {
	e := testEngine()
	m := &domain.RawMessage{ID: "msg-5", Origin: "solana", Destination: "hyperliquid"}

	tx := e.NormalizeMessage(m)

	if tx.Timestamp != 1700000000000 {
		t.Errorf("timestamp = %d, want injected now", tx.Timestamp)
	}
}

func TestNormalizeMessage_RecordsDiscoveredSets(t *testing.T) {
	e := testEngine()
	e.NormalizeMessage(&domain.RawMessage{
		ID: "msg-6", Origin: "zora", Destination: "hyperliquid", Body: "no signal",
	})

	assets := e.Registry().Assets()
	found := false
	for _, a := range assets {
		if a == domain.AssetUnknown {
			found = true
		}
	}
	if !found {
		t.Errorf("Unknown asset not recorded: %v", assets)
	}

	chains := e.Registry().Chains()
	sawZora := false
	for _, c := range chains {
		if c == "Zora" {
			sawZora = true
		}
	}
	if !sawZora {
		t.Errorf("discovered chain not recorded: %v", chains)
	}
}

func TestNormalizeBatch_DropsInvalid(t *testing.T) {
	e := testEngine()
	msgs := []*domain.RawMessage{
		{ID: "a", Origin: "solana", Destination: "hyperliquid", Timestamp: 1},
		{Origin: "solana", Destination: "hyperliquid"}, // no ID
		nil,
		{ID: "b", Origin: "ethereum", Destination: "hyperliquid", Timestamp: 2},
	}

	txs := e.NormalizeBatch(msgs)

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].ID != "a" || txs[1].ID != "b" {
		t.Errorf("unexpected IDs: %s, %s", txs[0].ID, txs[1].ID)
	}
}

func TestNewEngine_SeedsRegistry(t *testing.T) {
	e := testEngine()
	if len(e.Registry().Assets()) == 0 {
		t.Error("registry assets not seeded from tables")
	}
	if len(e.Registry().Chains()) == 0 {
		t.Error("registry chains not seeded from tables")
	}
}
