package normalization

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Candidate is one hypothesis about a message's asset and amount, tagged
// with the certainty used to pick the best guess.
type Candidate struct {
	Symbol     string
	Amount     string // decimal string
	Confidence float64
	Method     string
}

// Inference methods, most specific first.
const (
	MethodAddressAmount  = "address_amount"  // address match + decoded hex amount
	MethodAddressDefault = "address_default" // address match, static amount
	MethodSymbolMention  = "symbol_mention"  // word-boundary text match
	MethodAlias          = "alias"           // irregular spelling match
	MethodRoute          = "route"           // chain-pair heuristic
)

// Candidate confidences per method. Ordering encodes the core design
// decision: an on-chain address match always beats a plain text mention,
// which beats the route heuristic.
const (
	confidenceAddressAmount  = 0.9
	confidenceAddressDefault = 0.8
	confidenceSymbolMention  = 0.7
	confidenceAlias          = 0.6
	confidenceRoute          = 0.5
)

// Decoded hex amounts outside (0, 1e9) are treated as garbage.
const maxPlausibleAmount = 1e9

// hexStringRe matches any 0x-prefixed hex run; 42-character matches are
// treated as potential token addresses, the rest as potential amounts.
var hexStringRe = regexp.MustCompile(`0x[0-9a-fA-F]+`)

var (
	symbolRes   = map[string]*regexp.Regexp{}
	symbolResMu sync.Mutex
)

// symbolPattern returns a cached case-insensitive word-boundary matcher.
func symbolPattern(symbol string) *regexp.Regexp {
	symbolResMu.Lock()
	defer symbolResMu.Unlock()
	if re, ok := symbolRes[symbol]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(symbol) + `\b`)
	symbolRes[symbol] = re
	return re
}

// ScanCandidates runs the ordered inference passes over a raw message body
// and returns every candidate found, in recording order. It never returns
// an error; an empty slice means the caller should fall back to Unknown.
func ScanCandidates(body, origin, destination string, t Tables) []Candidate {
	var cands []Candidate

	// Pass 1: hex token addresses embedded in the body.
	hexStrings := hexStringRe.FindAllString(body, -1)
	for _, h := range hexStrings {
		if len(h) != 42 {
			continue
		}
		symbol, ok := t.AddressSymbols[strings.ToLower(h)]
		if !ok {
			continue
		}
		if amount, ok := decodeHexAmount(hexStrings, h, t.decimalsFor(symbol)); ok {
			cands = append(cands, Candidate{
				Symbol:     symbol,
				Amount:     amount,
				Confidence: confidenceAddressAmount,
				Method:     MethodAddressAmount,
			})
		}
		// The address match stands on its own even when no amount
		// decodes; record the static-amount fallback as well.
		cands = append(cands, Candidate{
			Symbol:     symbol,
			Amount:     t.defaultAmount(symbol),
			Confidence: confidenceAddressDefault,
			Method:     MethodAddressDefault,
		})
	}

	// Pass 2: plain-text symbol mentions, word-boundary matched.
	for _, symbol := range t.Symbols {
		if symbolPattern(symbol).MatchString(body) {
			cands = append(cands, Candidate{
				Symbol:     symbol,
				Amount:     t.defaultAmount(symbol),
				Confidence: confidenceSymbolMention,
				Method:     MethodSymbolMention,
			})
		}
	}
	lowerBody := strings.ToLower(body)
	for _, alias := range t.Aliases {
		if strings.Contains(lowerBody, alias.Text) {
			cands = append(cands, Candidate{
				Symbol:     alias.Symbol,
				Amount:     t.defaultAmount(alias.Symbol),
				Confidence: confidenceAlias,
				Method:     MethodAlias,
			})
		}
	}

	// Pass 3: chain-pair route heuristic, only when the body gave nothing.
	if len(cands) == 0 {
		key := chainKey(origin, t) + "|" + chainKey(destination, t)
		if symbol, ok := t.PairAssets[key]; ok {
			cands = append(cands, Candidate{
				Symbol:     symbol,
				Amount:     t.defaultAmount(symbol),
				Confidence: confidenceRoute,
				Method:     MethodRoute,
			})
		}
	}

	return cands
}

// BestCandidate picks the highest-confidence candidate. Ties break to the
// first recorded, preserving pass order.
func BestCandidate(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best, true
}

// decodeHexAmount tries the hex strings other than the matched address as
// a hex-encoded integer token amount, scaled by the asset's decimals.
// Only results in (0, 1e9) are accepted.
func decodeHexAmount(hexStrings []string, address string, decimals int) (string, bool) {
	for _, h := range hexStrings {
		if h == address {
			continue
		}
		n, ok := new(big.Int).SetString(strings.TrimPrefix(h, "0x"), 16)
		if !ok || n.Sign() <= 0 {
			continue
		}
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
		value, _ := new(big.Float).Quo(
			new(big.Float).SetInt(n),
			new(big.Float).SetInt(scale),
		).Float64()
		if value <= 0 || value >= maxPlausibleAmount {
			continue
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	}
	return "", false
}

// ParseAmount converts a decimal amount string to a float, 0 on failure.
func ParseAmount(amount string) float64 {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return v
}
