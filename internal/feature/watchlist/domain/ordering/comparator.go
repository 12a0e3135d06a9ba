// Package ordering provides comparators over tracked stocks and a tracker that
// remembers the last requested order and its direction.
package ordering

import (
	"cmp"
	"strings"

	"golang.org/x/text/cases"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// Comparator is a three-way comparison: negative if a sorts before b, zero if equal, positive otherwise.
type Comparator func(a, b entity.Stock) int

// Order is a named comparator. Orders are compared by pointer identity,
// so callers should reuse the package-level values instead of building new ones.
type Order struct {
	name    string
	compare Comparator
}

// NewOrder creates a named order.
func NewOrder(name string, compare Comparator) *Order {
	return &Order{name: name, compare: compare}
}

// Name returns the order's name.
func (o *Order) Name() string { return o.name }

// Compare applies the order's comparator.
func (o *Order) Compare(a, b entity.Stock) int { return o.compare(a, b) }

// Comparator returns the order's comparator.
func (o *Order) Comparator() Comparator { return o.compare }

var (
	// BySymbol orders case-insensitively by ticker symbol.
	BySymbol = NewOrder("symbol", compareSymbols)
	// ByBid orders by bid price.
	ByBid = NewOrder("bid", numeric(func(s entity.Stock) float64 { return s.Bid }))
	// ByAsk orders by ask price.
	ByAsk = NewOrder("ask", numeric(func(s entity.Stock) float64 { return s.Ask }))
	// ByLastVolume orders by last traded volume.
	ByLastVolume = NewOrder("lastVolume", numeric(func(s entity.Stock) float64 { return s.LastVolume }))
	// ByOpen orders by opening price.
	ByOpen = NewOrder("open", numeric(func(s entity.Stock) float64 { return s.Open }))
	// ByHasAlert puts stocks with a configured alert first.
	ByHasAlert = NewOrder("hasAlert", numeric(alertRank))
)

var orders = []*Order{BySymbol, ByBid, ByAsk, ByLastVolume, ByOpen, ByHasAlert}

// Lookup finds a built-in order by name (case-insensitive).
func Lookup(name string) (*Order, bool) {
	for _, o := range orders {
		if strings.EqualFold(o.name, name) {
			return o, true
		}
	}
	return nil, false
}

// Names lists the built-in order names.
func Names() []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.name)
	}
	return out
}

// Reverse swaps the argument order of c.
func Reverse(c Comparator) Comparator {
	return func(a, b entity.Stock) int { return c(b, a) }
}

func compareSymbols(a, b entity.Stock) int {
	// cases.Caser は状態を持つため呼び出しごとに生成する
	return strings.Compare(cases.Fold().String(a.Symbol), cases.Fold().String(b.Symbol))
}

func numeric(key func(entity.Stock) float64) Comparator {
	return func(a, b entity.Stock) int {
		return cmp.Compare(key(a), key(b))
	}
}

func alertRank(s entity.Stock) float64 {
	if s.HasAlert() {
		return -1
	}
	return 1
}
