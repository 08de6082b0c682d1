package normalization

// Tables holds the static lookup data the inference passes run against.
// They are explicit parameters (not hidden globals) so the candidate
// ranking is independently testable with custom tables.
type Tables struct {
	// AddressSymbols maps lowercase 0x token contract addresses to symbols.
	AddressSymbols map[string]string
	// Decimals maps symbols to token decimals. Missing symbols use 18.
	Decimals map[string]int
	// DefaultAmounts maps symbols to the static amount used when no
	// on-chain amount could be decoded. Missing symbols use "1".
	DefaultAmounts map[string]string
	// Prices maps symbols to USD unit prices. Missing symbols price at 1
	// (stablecoin assumption as a safe fallback).
	Prices map[string]float64
	// Symbols lists known symbols in scan order for the text pass.
	Symbols []string
	// Aliases lists irregular spellings in scan order.
	Aliases []Alias
	// PairAssets maps "origin|destination" (lowercase canonical names) to
	// the asset a route typically carries.
	PairAssets map[string]string
	// ChainIDNames maps numeric chain/domain identifiers to display names.
	ChainIDNames map[string]string
	// ChainSlugNames maps lowercase slugs to display names.
	ChainSlugNames map[string]string
}

// Alias is one irregular spelling of an asset symbol.
type Alias struct {
	Text   string // lowercase substring to look for
	Symbol string
}

// defaultDecimals applies to every token without a Decimals entry.
const defaultDecimals = 18

func (t Tables) decimalsFor(symbol string) int {
	if d, ok := t.Decimals[symbol]; ok {
		return d
	}
	return defaultDecimals
}

func (t Tables) defaultAmount(symbol string) string {
	if a, ok := t.DefaultAmounts[symbol]; ok {
		return a
	}
	return "1"
}

// PriceFor returns the USD unit price for a symbol, 1 if unrecognized.
func (t Tables) PriceFor(symbol string) float64 {
	if p, ok := t.Prices[symbol]; ok {
		return p
	}
	return 1
}

// DefaultTables returns the built-in lookup data.
func DefaultTables() Tables {
	return Tables{
		AddressSymbols: map[string]string{
			"0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2": "WETH",
			"0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48": "USDC",
			"0xdac17f958d2ee523a2206206994597c13d831ec7": "USDT",
			"0x6b175474e89094c44da98b954eedeac495271d0f": "DAI",
			"0x2260fac5e5542a773aa44fbcfedf7c193bc2c599": "WBTC",
			"0xae7ab96520de3a18e5e111b5eaab095312d7fe84": "stETH",
			"0x514910771af9ca656af840dff83e8264ecf986ca": "LINK",
			"0x1f9840a85d5af5bf1d1762f925bdaddc4201f984": "UNI",
		},
		Decimals: map[string]int{
			"USDC": 6,
			"USDT": 6,
			"WBTC": 8,
		},
		DefaultAmounts: map[string]string{
			"USDC":  "1000",
			"USDT":  "1000",
			"DAI":   "1000",
			"WETH":  "2.5",
			"ETH":   "2.5",
			"stETH": "2.5",
			"rETH":  "2.5",
			"WBTC":  "0.05",
			"stBTC": "0.05",
			"SOL":   "25",
			"mSOL":  "25",
			"stSOL": "25",
			"BONK":  "5000000",
			"MATIC": "500",
			"AVAX":  "50",
			"LINK":  "100",
			"UNI":   "100",
			"HYPE":  "100",
		},
		Prices: map[string]float64{
			"USDC":  1,
			"USDT":  1,
			"DAI":   1,
			"WETH":  3000,
			"ETH":   3000,
			"stETH": 3000,
			"rETH":  3000,
			"WBTC":  60000,
			"stBTC": 60000,
			"SOL":   150,
			"mSOL":  150,
			"stSOL": 150,
			"BONK":  0.00002,
			"MATIC": 0.5,
			"AVAX":  30,
			"LINK":  15,
			"UNI":   8,
			"HYPE":  25,
		},
		Symbols: []string{
			"USDC", "USDT", "DAI", "WETH", "WBTC", "stETH", "rETH",
			"stBTC", "mSOL", "stSOL", "SOL", "ETH", "BONK", "MATIC",
			"AVAX", "LINK", "UNI", "HYPE",
		},
		Aliases: []Alias{
			{Text: "usd coin", Symbol: "USDC"},
			{Text: "usdc.e", Symbol: "USDC"},
			{Text: "tether", Symbol: "USDT"},
			{Text: "wrapped ether", Symbol: "WETH"},
			{Text: "wrapped eth", Symbol: "WETH"},
			{Text: "wrapped btc", Symbol: "WBTC"},
			{Text: "wrapped bitcoin", Symbol: "WBTC"},
			{Text: "staked eth", Symbol: "stETH"},
			{Text: "wrapped sol", Symbol: "SOL"},
		},
		PairAssets: map[string]string{
			"solana|hyperliquid":      "USDC",
			"hyperliquid|solana":      "USDC",
			"ethereum|hyperliquid":    "USDC",
			"hyperliquid|ethereum":    "USDC",
			"arbitrum|hyperliquid":    "WETH",
			"base|hyperliquid":        "ETH",
			"polygon|hyperliquid":     "MATIC",
			"avalanche|hyperliquid":   "AVAX",
		},
		ChainIDNames: map[string]string{
			"1":          "Ethereum",
			"10":         "Optimism",
			"56":         "BNB Chain",
			"137":        "Polygon",
			"999":        "Hyperliquid",
			"8453":       "Base",
			"42161":      "Arbitrum",
			"43114":      "Avalanche",
			"1399811149": "Solana",
		},
		ChainSlugNames: map[string]string{
			"ethereum":    "Ethereum",
			"optimism":    "Optimism",
			"bsc":         "BNB Chain",
			"polygon":     "Polygon",
			"hyperliquid": "Hyperliquid",
			"base":        "Base",
			"arbitrum":    "Arbitrum",
			"avalanche":   "Avalanche",
			"solana":      "Solana",
		},
	}
}
