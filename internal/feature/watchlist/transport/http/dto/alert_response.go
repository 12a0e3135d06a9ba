package dto

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"stock_watchlist/internal/feature/watchlist/domain/alerting"
	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// BreachResponse is one stock whose alert threshold was reached.
type BreachResponse struct {
	Symbol                string  `json:"symbol"`
	Bid                   float64 `json:"bid"`
	Open                  float64 `json:"open"`
	AlertThresholdPercent float64 `json:"alertThresholdPercent"`
	PercentMovement       string  `json:"percentMovement"` // 小数第2位まで (例: "100.00")
}

// AlertsResult is the evaluated alert state.
type AlertsResult struct {
	Kind     string           `json:"kind"`
	Message  string           `json:"message,omitempty"`
	Breaches []BreachResponse `json:"breaches"`
}

// AlertsResponse wraps the evaluation in the outcome of the tracked stocks.
type AlertsResponse = OutcomeResponse[AlertsResult]

// FormatPercent formats a percentage with exactly two decimals.
// Non-finite values (a zero opening price) are rendered as "+Inf", "-Inf" or "NaN".
func FormatPercent(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// NewAlertsResult converts an evaluation result.
func NewAlertsResult(r alerting.Result) AlertsResult {
	out := AlertsResult{
		Kind:     r.Kind.String(),
		Message:  r.Message(),
		Breaches: make([]BreachResponse, 0, len(r.Breaches)),
	}
	for _, b := range r.Breaches {
		out.Breaches = append(out.Breaches, BreachResponse{
			Symbol:                b.Stock.Symbol,
			Bid:                   b.Stock.Bid,
			Open:                  b.Stock.Open,
			AlertThresholdPercent: b.Stock.AlertThresholdPercent,
			PercentMovement:       FormatPercent(b.PercentMovement),
		})
	}
	return out
}

// NewAlertsResponse converts the outcome of an evaluation.
func NewAlertsResponse(o entity.Outcome[alerting.Result]) AlertsResponse {
	return NewOutcomeResponse(o, NewAlertsResult)
}
