// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Stock is one point-in-time price snapshot for a tracked ticker symbol.
// Values are treated as immutable: use WithAlertThreshold to derive a changed copy.
type Stock struct {
	Symbol                string    // Ticker symbol, unique within a watch-list (e.g. "AAPL")
	Bid                   float64   // Best bid price
	Ask                   float64   // Best ask price
	LastVolume            float64   // Volume of the last trade
	Open                  float64   // Opening price of the session
	AlertThresholdPercent float64   // Signed alert threshold in percent; 0 disables the alert
	RetrievedAt           time.Time // Time the snapshot was received
}

// WithAlertThreshold returns a copy of the stock carrying the given alert threshold.
func (s Stock) WithAlertThreshold(percent float64) Stock {
	s.AlertThresholdPercent = percent
	return s
}

// HasAlert reports whether an alert threshold is configured for the stock.
func (s Stock) HasAlert() bool {
	return s.AlertThresholdPercent != 0
}

// Selection returns the persisted configuration for this stock.
func (s Stock) Selection() SelectedSymbol {
	return SelectedSymbol{Symbol: s.Symbol, AlertThresholdPercent: s.AlertThresholdPercent}
}

// Selections converts tracked stocks into their persisted configuration, keeping order.
func Selections(stocks []Stock) []SelectedSymbol {
	out := make([]SelectedSymbol, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Selection())
	}
	return out
}
