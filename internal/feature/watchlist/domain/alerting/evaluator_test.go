package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

func alertStock(symbol string, bid, open, threshold float64) entity.Stock {
	return entity.Stock{Symbol: symbol, Bid: bid, Open: open, AlertThresholdPercent: threshold}
}

func TestEvaluate_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stocks  []entity.Stock
		kind    ResultKind
		message string
	}{
		{"nil", nil, NoStocks, MessageNoStocks},
		{"empty", []entity.Stock{}, NoStocks, MessageNoStocks},
		{
			"no thresholds",
			[]entity.Stock{alertStock("A", 100, 1, 0), alertStock("B", 0.01, 1, 0)},
			NoAlertsConfigured, MessageNoAlertsConfigured,
		},
		{
			"not breached",
			[]entity.Stock{alertStock("TEST1", 1.5, 1, 100)},
			NoneBreached, MessageNoneBreached,
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(tt.stocks)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.message, got.Message())
			assert.False(t, got.HasBreaches())
			assert.Empty(t, got.Breaches)
		})
	}
}

func TestEvaluate_Breaches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stocks   []entity.Stock
		symbols  []string
		movement []float64
	}{
		{
			name:     "positive boundary is inclusive",
			stocks:   []entity.Stock{alertStock("TEST1", 2, 1, 100)},
			symbols:  []string{"TEST1"},
			movement: []float64{100},
		},
		{
			name:     "negative boundary is inclusive",
			stocks:   []entity.Stock{alertStock("TEST1", 0.5, 1, -50)},
			symbols:  []string{"TEST1"},
			movement: []float64{-50},
		},
		{
			name:     "drop past negative threshold",
			stocks:   []entity.Stock{alertStock("TEST1", 0.1, 1, -50)},
			symbols:  []string{"TEST1"},
			movement: []float64{-90},
		},
		{
			name: "only the breached stock is returned",
			stocks: []entity.Stock{
				alertStock("TEST1", 2.1, 1, 500),
				alertStock("TEST2", 2.1, 1, 100),
			},
			symbols:  []string{"TEST2"},
			movement: []float64{110},
		},
		{
			name: "input order is kept",
			stocks: []entity.Stock{
				alertStock("Z", 3, 1, 50),
				alertStock("M", 1, 1, 0),
				alertStock("A", 3, 1, 50),
			},
			symbols:  []string{"Z", "A"},
			movement: []float64{200, 200},
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(tt.stocks)
			require.Equal(t, Breached, got.Kind)
			assert.True(t, got.HasBreaches())
			assert.Empty(t, got.Message())
			require.Len(t, got.Breaches, len(tt.symbols))
			for i, b := range got.Breaches {
				assert.Equal(t, tt.symbols[i], b.Stock.Symbol)
				assert.InDelta(t, tt.movement[i], b.PercentMovement, 1e-9)
			}
		})
	}
}

func TestEvaluate_RisingStockDoesNotTriggerNegativeThreshold(t *testing.T) {
	t.Parallel()

	got := Evaluate([]entity.Stock{alertStock("UP", 2, 1, -10)})
	assert.Equal(t, NoneBreached, got.Kind)
}

func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()

	stocks := []entity.Stock{
		alertStock("A", 2, 1, 100),
		alertStock("B", 1.01, 1, 5),
		alertStock("C", 0.5, 1, -20),
		alertStock("D", 1, 1, 0),
	}
	first := Evaluate(stocks)
	require.True(t, first.HasBreaches())

	again := make([]entity.Stock, 0, len(first.Breaches))
	for _, b := range first.Breaches {
		again = append(again, b.Stock)
	}
	second := Evaluate(again)
	require.True(t, second.HasBreaches())
	assert.Equal(t, first.Breaches, second.Breaches)
}

func TestPercentMovement_RemovesFloatNoise(t *testing.T) {
	t.Parallel()

	// 0.3 - 0.1 は float64 で 0.19999999999999998 になるが、丸めで 0.2 になる
	s := alertStock("X", 0.3, 0.1, 0)
	assert.Equal(t, LimitToSafePrecision(0.2/0.1*100), LimitToSafePrecision(PercentMovement(s)))
	assert.Equal(t, 0.2, LimitToSafePrecision(0.3-0.1))
}

func TestLimitPrecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     float64
		digits int
		want   float64
	}{
		{0.1 + 0.2, 16, 0.3},
		{123.456, 4, 123.5},
		{-0.000123456, 2, -0.00012},
		{0, 16, 0},
		{1e21, 16, 1e21},
	}
	for _, tt := range tests {
		tt := tt
		assert.Equal(t, tt.want, LimitPrecision(tt.in, tt.digits))
	}
}

func TestResultKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no_stocks", NoStocks.String())
	assert.Equal(t, "breached", Breached.String())
	assert.Equal(t, "unknown", ResultKind(42).String())
}
