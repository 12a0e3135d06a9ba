package ordering

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

func stock(symbol string, bid, ask, vol, open, alert float64) entity.Stock {
	return entity.Stock{Symbol: symbol, Bid: bid, Ask: ask, LastVolume: vol, Open: open, AlertThresholdPercent: alert}
}

// TestOrders_Compare は各組み込み順序の三方比較結果をテーブル駆動テストで検証します。
func TestOrders_Compare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order *Order
		a, b  entity.Stock
		want  int
	}{
		{"symbol less", BySymbol, stock("AAPL", 0, 0, 0, 0, 0), stock("MSFT", 0, 0, 0, 0, 0), -1},
		{"symbol greater", BySymbol, stock("msft", 0, 0, 0, 0, 0), stock("AAPL", 0, 0, 0, 0, 0), 1},
		{"symbol case-insensitive equal", BySymbol, stock("aapl", 0, 0, 0, 0, 0), stock("AAPL", 0, 0, 0, 0, 0), 0},
		{"symbol case does not decide order", BySymbol, stock("b", 0, 0, 0, 0, 0), stock("A", 0, 0, 0, 0, 0), 1},
		{"bid less", ByBid, stock("X", 1, 0, 0, 0, 0), stock("Y", 2, 0, 0, 0, 0), -1},
		{"bid equal", ByBid, stock("X", 2, 0, 0, 0, 0), stock("Y", 2, 0, 0, 0, 0), 0},
		{"ask greater", ByAsk, stock("X", 0, 3, 0, 0, 0), stock("Y", 0, 2, 0, 0, 0), 1},
		{"volume less", ByLastVolume, stock("X", 0, 0, 10, 0, 0), stock("Y", 0, 0, 100, 0, 0), -1},
		{"open greater", ByOpen, stock("X", 0, 0, 0, 5.5, 0), stock("Y", 0, 0, 0, 5.25, 0), 1},
		{"alert before no alert", ByHasAlert, stock("X", 0, 0, 0, 0, 5), stock("Y", 0, 0, 0, 0, 0), -1},
		{"no alert after alert", ByHasAlert, stock("X", 0, 0, 0, 0, 0), stock("Y", 0, 0, 0, 0, -2), 1},
		{"both alerts equal", ByHasAlert, stock("X", 0, 0, 0, 0, 5), stock("Y", 0, 0, 0, 0, -2), 0},
		{"neither alert equal", ByHasAlert, stock("X", 0, 0, 0, 0, 0), stock("Y", 0, 0, 0, 0, 0), 0},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.order.Compare(tt.a, tt.b))
		})
	}
}

func TestReverse_SwapsArguments(t *testing.T) {
	t.Parallel()

	a := stock("A", 1, 0, 0, 0, 0)
	b := stock("B", 2, 0, 0, 0, 0)
	reversed := Reverse(ByBid.Comparator())

	assert.Equal(t, ByBid.Compare(b, a), reversed(a, b))
	assert.Equal(t, ByBid.Compare(a, b), reversed(b, a))
	assert.Equal(t, 0, reversed(a, a))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		o, ok := Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, o.Name())
	}

	o, ok := Lookup("SYMBOL")
	assert.True(t, ok)
	assert.Same(t, BySymbol, o)

	_, ok = Lookup("price")
	assert.False(t, ok)
}

// TestBySymbol_StableSort は同じキーの要素が元の相対順序を保つことを検証します。
func TestBySymbol_StableSort(t *testing.T) {
	t.Parallel()

	stocks := []entity.Stock{
		stock("b", 1, 0, 0, 0, 0),
		stock("A", 2, 0, 0, 0, 0),
		stock("B", 3, 0, 0, 0, 0),
	}
	slices.SortStableFunc(stocks, BySymbol.Comparator())

	assert.Equal(t, []float64{2, 1, 3}, []float64{stocks[0].Bid, stocks[1].Bid, stocks[2].Bid})
}
