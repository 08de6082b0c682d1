package domain

import "time"

// Timeframe is a time-window keyword accepted by the read operations.
type Timeframe string

// Supported timeframe keywords.
const (
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
)

// Duration returns the fixed window for the keyword.
// Unknown keywords fall back to 24 hours.
func (t Timeframe) Duration() time.Duration {
	switch t {
	case Timeframe7d:
		return 7 * 24 * time.Hour
	case Timeframe30d:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Valid reports whether t is one of the supported keywords.
func (t Timeframe) Valid() bool {
	switch t {
	case Timeframe24h, Timeframe7d, Timeframe30d:
		return true
	}
	return false
}

// ParseTimeframe maps an arbitrary string to a supported keyword,
// defaulting to 24h.
func ParseTimeframe(s string) Timeframe {
	tf := Timeframe(s)
	if tf.Valid() {
		return tf
	}
	return Timeframe24h
}
