package normalization

import (
	"strings"
	"unicode"
)

// UnknownChain is the display name for empty chain identifiers.
const UnknownChain = "Unknown"

// CanonicalChainName maps a raw chain identifier (numeric ID string,
// lowercase slug, or free-form name) to a display name. Unrecognized
// non-empty identifiers are title-cased as a best effort.
func CanonicalChainName(raw string, t Tables) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UnknownChain
	}
	if name, ok := t.ChainIDNames[s]; ok {
		return name
	}
	if name, ok := t.ChainSlugNames[strings.ToLower(s)]; ok {
		return name
	}
	return titleCase(s)
}

// ChainQueryID resolves a display name or raw identifier to the lowercase
// slug the explorer API filters on.
func ChainQueryID(nameOrID string, t Tables) string {
	s := strings.TrimSpace(nameOrID)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if _, ok := t.ChainSlugNames[lower]; ok {
		return lower
	}
	// Numeric identifiers resolve through their display name.
	if name, ok := t.ChainIDNames[s]; ok {
		s = name
	}
	for slug, name := range t.ChainSlugNames {
		if strings.EqualFold(name, s) {
			return slug
		}
	}
	return lower
}

// chainKey is the lowercase canonical name used for route-heuristic keys.
func chainKey(raw string, t Tables) string {
	return strings.ToLower(CanonicalChainName(raw, t))
}

// titleCase uppercases the first rune only, matching the display style of
// the static tables without mangling mixed-case identifiers.
func titleCase(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
