package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// DefaultSelectionKey is the Redis key holding the watch-list document.
const DefaultSelectionKey = "watchlist:selections"

// SelectionRedis implements usecase.SelectionRepository as a single JSON document in Redis.
type SelectionRedis struct {
	client *redis.Client
	key    string
}

var _ usecase.SelectionRepository = (*SelectionRedis)(nil)

// NewSelectionRedis creates a new SelectionRedis instance. An empty key uses DefaultSelectionKey.
func NewSelectionRedis(client *redis.Client, key string) *SelectionRedis {
	if key == "" {
		key = DefaultSelectionKey
	}
	return &SelectionRedis{client: client, key: key}
}

// LoadSelections returns the stored selections. A missing or unreadable document yields an empty list.
func (r *SelectionRedis) LoadSelections(ctx context.Context) ([]entity.SelectedSymbol, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []entity.SelectedSymbol{}, nil
		}
		return nil, err
	}

	selections, err := decodeSelections(data)
	if err != nil {
		slog.Warn("discarding corrupted selections", "key", r.key, "error", err)
		return []entity.SelectedSymbol{}, nil
	}
	return entity.SanitizeSelections(selections), nil
}

// SaveSelections replaces the stored document.
func (r *SelectionRedis) SaveSelections(ctx context.Context, selections []entity.SelectedSymbol) error {
	data, err := json.Marshal(entity.SanitizeSelections(selections))
	if err != nil {
		return fmt.Errorf("failed to marshal selections: %w", err)
	}
	return r.client.Set(ctx, r.key, data, 0).Err()
}

// storedSelection accepts thresholds written as JSON numbers or numeric strings.
type storedSelection struct {
	Symbol                string          `json:"symbol"`
	AlertThresholdPercent json.RawMessage `json:"alertThresholdPercent"`
}

// decodeSelections parses the document entry by entry; entries that cannot be read are skipped.
func decodeSelections(data []byte) ([]entity.SelectedSymbol, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]entity.SelectedSymbol, 0, len(raw))
	for _, item := range raw {
		var s storedSelection
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		out = append(out, entity.SelectedSymbol{
			Symbol:                s.Symbol,
			AlertThresholdPercent: parseThreshold(s.AlertThresholdPercent),
		})
	}
	return out, nil
}

// parseThreshold は数値・数値文字列を受け付け、それ以外は 0 を返します。
func parseThreshold(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(raw); err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
