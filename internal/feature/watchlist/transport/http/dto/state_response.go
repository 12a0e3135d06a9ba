// Package dto defines the request and response bodies of the watchlist HTTP API.
package dto

import (
	"time"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/domain/ordering"
)

// ErrorResponse is returned with every 4xx/5xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AppliedResponse reports whether a mutation changed the watch-list.
type AppliedResponse struct {
	Applied bool `json:"applied"`
}

// OutcomeResponse is the JSON form of an asynchronous load.
// Value is set only when Status is "ready", Error only when it is "failed".
type OutcomeResponse[T any] struct {
	Status string `json:"status"`
	Value  *T     `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StockResponse is one tracked stock.
type StockResponse struct {
	Symbol                string    `json:"symbol"`
	Bid                   float64   `json:"bid"`
	Ask                   float64   `json:"ask"`
	LastVolume            float64   `json:"lastVolume"`
	Open                  float64   `json:"open"`
	AlertThresholdPercent float64   `json:"alertThresholdPercent"`
	HasAlert              bool      `json:"hasAlert"`
	RetrievedAt           time.Time `json:"retrievedAt"`
}

// OrderResponse is the order last requested for the tracked stocks.
type OrderResponse struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// StateResponse is the full watch-list snapshot.
type StateResponse struct {
	TrackedStocks    OutcomeResponse[[]StockResponse] `json:"trackedStocks"`
	AvailableSymbols OutcomeResponse[[]string]        `json:"availableSymbols"`
	PendingAlertEdit *entity.SelectedSymbol           `json:"pendingAlertEdit"`
	Order            *OrderResponse                   `json:"order,omitempty"`
}

// NewOutcomeResponse converts an outcome, mapping the ready value with f.
func NewOutcomeResponse[T, U any](o entity.Outcome[T], f func(T) U) OutcomeResponse[U] {
	out := OutcomeResponse[U]{Status: o.Kind().String()}
	o.Match(
		func() {},
		func(v T) {
			mapped := f(v)
			out.Value = &mapped
		},
		func(err error) { out.Error = err.Error() },
	)
	return out
}

// NewStockResponse converts a stock.
func NewStockResponse(s entity.Stock) StockResponse {
	return StockResponse{
		Symbol:                s.Symbol,
		Bid:                   s.Bid,
		Ask:                   s.Ask,
		LastVolume:            s.LastVolume,
		Open:                  s.Open,
		AlertThresholdPercent: s.AlertThresholdPercent,
		HasAlert:              s.HasAlert(),
		RetrievedAt:           s.RetrievedAt,
	}
}

// NewStateResponse converts a state snapshot. order may be nil when nothing was sorted yet.
func NewStateResponse(state entity.State, order *ordering.Order, direction ordering.Direction) StateResponse {
	resp := StateResponse{
		TrackedStocks: NewOutcomeResponse(state.TrackedStocks, func(stocks []entity.Stock) []StockResponse {
			out := make([]StockResponse, 0, len(stocks))
			for _, s := range stocks {
				out = append(out, NewStockResponse(s))
			}
			return out
		}),
		AvailableSymbols: NewOutcomeResponse(state.AvailableSymbols, func(symbols []string) []string {
			return append(make([]string, 0, len(symbols)), symbols...)
		}),
	}
	if state.StockPendingAlertEdit != nil {
		pending := *state.StockPendingAlertEdit
		resp.PendingAlertEdit = &pending
	}
	if order != nil {
		resp.Order = &OrderResponse{Name: order.Name(), Direction: direction.String()}
	}
	return resp
}
