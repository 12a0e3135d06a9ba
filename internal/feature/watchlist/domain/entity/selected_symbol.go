package entity

import (
	"math"
	"strings"
)

// SelectedSymbol is the persisted configuration for one watch-list entry.
// It is also the request shape sent to the market data client.
type SelectedSymbol struct {
	Symbol                string  `json:"symbol"`
	AlertThresholdPercent float64 `json:"alertThresholdPercent"`
}

// SanitizeSelections normalizes selections read back from storage.
// Symbols are trimmed, blank symbols dropped, non-finite thresholds replaced by 0,
// and duplicate symbols removed (the first occurrence wins). Order is preserved.
func SanitizeSelections(in []SelectedSymbol) []SelectedSymbol {
	out := make([]SelectedSymbol, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		symbol := strings.TrimSpace(s.Symbol)
		if symbol == "" {
			continue
		}
		if _, ok := seen[symbol]; ok {
			continue
		}
		seen[symbol] = struct{}{}

		threshold := s.AlertThresholdPercent
		if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			threshold = 0
		}
		out = append(out, SelectedSymbol{Symbol: symbol, AlertThresholdPercent: threshold})
	}
	return out
}
