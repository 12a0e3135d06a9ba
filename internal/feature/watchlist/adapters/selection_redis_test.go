package adapters

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func TestNewSelectionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)

	assert.Equal(t, DefaultSelectionKey, NewSelectionRedis(client, "").key)
	assert.Equal(t, "custom", NewSelectionRedis(client, "custom").key)
}

func TestSelectionRedis_SaveAndLoad(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSelectionRedis(client, "")
	ctx := context.Background()

	got, err := repo.LoadSelections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.SelectedSymbol{}, got)

	in := []entity.SelectedSymbol{{Symbol: "MSFT", AlertThresholdPercent: 1.25}, {Symbol: "AAPL"}}
	require.NoError(t, repo.SaveSelections(ctx, in))

	stored, err := mr.Get(DefaultSelectionKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"symbol":"MSFT","alertThresholdPercent":1.25},{"symbol":"AAPL","alertThresholdPercent":0}]`, stored)

	got, err = repo.LoadSelections(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSelectionRedis_LoadTolerant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    []entity.SelectedSymbol
	}{
		{
			name:    "not json",
			payload: "{{{",
			want:    []entity.SelectedSymbol{},
		},
		{
			name:    "object instead of list",
			payload: `{"symbol":"AAPL"}`,
			want:    []entity.SelectedSymbol{},
		},
		{
			name:    "threshold as string",
			payload: `[{"symbol":"AAPL","alertThresholdPercent":"2.5"}]`,
			want:    []entity.SelectedSymbol{{Symbol: "AAPL", AlertThresholdPercent: 2.5}},
		},
		{
			name:    "unreadable threshold becomes zero",
			payload: `[{"symbol":"AAPL","alertThresholdPercent":"abc"},{"symbol":"MSFT","alertThresholdPercent":true},{"symbol":"GOOG"}]`,
			want:    []entity.SelectedSymbol{{Symbol: "AAPL"}, {Symbol: "MSFT"}, {Symbol: "GOOG"}},
		},
		{
			name:    "bad entries are skipped",
			payload: `[42,{"symbol":7},{"symbol":"  "},{"symbol":"AAPL","alertThresholdPercent":-3},{"symbol":"AAPL","alertThresholdPercent":9}]`,
			want:    []entity.SelectedSymbol{{Symbol: "AAPL", AlertThresholdPercent: -3}},
		},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, mr := setupTestRedis(t)
			require.NoError(t, mr.Set(DefaultSelectionKey, tt.payload))

			got, err := NewSelectionRedis(client, "").LoadSelections(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectionRedis_LoadConnectionError(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	mr.Close()

	_, err := NewSelectionRedis(client, "").LoadSelections(context.Background())
	assert.Error(t, err)
}
