package alerting

import "stock_watchlist/internal/feature/watchlist/domain/entity"

// ResultKind classifies the outcome of an evaluation.
type ResultKind int

const (
	// NoStocks means there was nothing to evaluate.
	NoStocks ResultKind = iota
	// NoAlertsConfigured means stocks exist but none has a threshold.
	NoAlertsConfigured
	// NoneBreached means no configured threshold was reached.
	NoneBreached
	// Breached means at least one stock reached its threshold.
	Breached
)

// Messages shown when there is nothing to alert about.
const (
	MessageNoStocks           = "No stocks have been selected, so there is nothing to raise alerts for"
	MessageNoAlertsConfigured = "While stocks HAVE been selected, none of them have price change alerts configured"
	MessageNoneBreached       = "None of the selected stocks have changed within the specified margins"
)

// String returns a snake_case name for the kind.
func (k ResultKind) String() string {
	switch k {
	case NoStocks:
		return "no_stocks"
	case NoAlertsConfigured:
		return "no_alerts_configured"
	case NoneBreached:
		return "none_breached"
	case Breached:
		return "breached"
	default:
		return "unknown"
	}
}

// Breach pairs a stock with the percentage its bid moved from the open.
type Breach struct {
	Stock           entity.Stock
	PercentMovement float64
}

// Result is either an explanatory message or the list of breaches.
type Result struct {
	Kind     ResultKind
	Breaches []Breach
}

// Message returns the explanation for a result without breaches, or "" when breached.
func (r Result) Message() string {
	switch r.Kind {
	case NoStocks:
		return MessageNoStocks
	case NoAlertsConfigured:
		return MessageNoAlertsConfigured
	case NoneBreached:
		return MessageNoneBreached
	default:
		return ""
	}
}

// HasBreaches reports whether the result carries breached stocks.
func (r Result) HasBreaches() bool {
	return r.Kind == Breached
}

// PercentMovement returns how far the bid moved from the open, in percent.
// Inputs and the difference are rounded to 16 significant digits before use.
func PercentMovement(s entity.Stock) float64 {
	open := LimitToSafePrecision(s.Open)
	increase := LimitToSafePrecision(LimitToSafePrecision(s.Bid) - open)
	return (increase / open) * 100
}

// Evaluate returns the stocks whose movement reached their alert threshold, in input order.
// A positive threshold is reached when the movement is >= threshold, a negative one when
// the movement is <= threshold. A zero threshold means alerts are disabled.
func Evaluate(stocks []entity.Stock) Result {
	if len(stocks) == 0 {
		return Result{Kind: NoStocks}
	}

	withAlerts := make([]entity.Stock, 0, len(stocks))
	for _, s := range stocks {
		if s.HasAlert() {
			withAlerts = append(withAlerts, s)
		}
	}
	if len(withAlerts) == 0 {
		return Result{Kind: NoAlertsConfigured}
	}

	var breaches []Breach
	for _, s := range withAlerts {
		movement := PercentMovement(s)
		if breached(movement, s.AlertThresholdPercent) {
			breaches = append(breaches, Breach{Stock: s, PercentMovement: movement})
		}
	}
	if len(breaches) == 0 {
		return Result{Kind: NoneBreached}
	}
	return Result{Kind: Breached, Breaches: breaches}
}

func breached(movement, threshold float64) bool {
	t := LimitToSafePrecision(LimitToSafePrecision(threshold))
	switch {
	case t > 0:
		return movement >= t
	case t < 0:
		return movement <= t
	default:
		// 0 はアラート無効を意味する
		return false
	}
}
