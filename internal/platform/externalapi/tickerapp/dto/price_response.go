// Package dto defines data transfer objects for the ticker app API responses.
package dto

import "github.com/shopspring/decimal"

// PriceResponse represents one element of the JSON array returned by the prices endpoint.
// Numeric fields accept JSON numbers as well as numeric strings.
type PriceResponse struct {
	Symbol  string          `json:"symbol"`
	Bid     decimal.Decimal `json:"bid"`
	Ask     decimal.Decimal `json:"ask"`
	LastVol decimal.Decimal `json:"lastVol"`
	Open    decimal.Decimal `json:"open"`
}
