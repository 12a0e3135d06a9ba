package dto

// AddSymbolRequest is the body of POST /watchlist/stocks and POST /watchlist/alert-edit.
type AddSymbolRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// SortRequest is the body of POST /watchlist/sort. Direction is optional; when omitted,
// requesting the same order again flips the direction.
type SortRequest struct {
	Order     string  `json:"order" binding:"required"`
	Direction *string `json:"direction"`
}

// ThresholdRequest carries a signed alert threshold in percent.
type ThresholdRequest struct {
	ThresholdPercent *float64 `json:"thresholdPercent" binding:"required"`
}
