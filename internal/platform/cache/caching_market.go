// Package cache provides caching decorators for the market data source.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// CachingMarket decorates a MarketSource with Redis caching of the symbol list.
// The list changes at most once a day, so entries expire at the next refresh time.
// Prices are always fetched from the inner source.
type CachingMarket struct {
	inner     usecase.MarketSource
	rdb       *redis.Client
	refresh   RefreshConfig
	namespace string
	now       func() time.Time
}

var (
	_ usecase.MarketSource           = (*CachingMarket)(nil)
	_ usecase.SymbolCacheInvalidator = (*CachingMarket)(nil)
)

// NewCachingMarket decorates a MarketSource with Redis caching.
// If namespace is empty, it uses "tickers".
func NewCachingMarket(rdb *redis.Client, refresh RefreshConfig, inner usecase.MarketSource, namespace string) *CachingMarket {
	if namespace == "" {
		namespace = "tickers"
	}
	if refresh.Location == nil {
		refresh.Location = time.UTC
	}
	return &CachingMarket{
		inner:     inner,
		rdb:       rdb,
		refresh:   refresh,
		namespace: namespace,
		now:       time.Now,
	}
}

// LoadAllSymbols retrieves the symbol list, checking cache first then falling back to the inner source.
func (c *CachingMarket) LoadAllSymbols(ctx context.Context) ([]string, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.LoadAllSymbols(ctx)
	}

	key := c.symbolsKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []string
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the API
	out, err := c.inner.LoadAllSymbols(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache until the next refresh (best effort)
	if b, err := json.Marshal(out); err == nil {
		ttl := TimeUntilNextRefresh(c.now(), c.refresh.Hour, c.refresh.Location)
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}

	return out, nil
}

// LoadStocks is never cached.
func (c *CachingMarket) LoadStocks(ctx context.Context, selections []entity.SelectedSymbol) ([]entity.Stock, error) {
	return c.inner.LoadStocks(ctx, selections)
}

// Invalidate drops the cached symbol list.
func (c *CachingMarket) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, c.symbolsKey()).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("invalidate symbol cache: %w", err)
	}
	return nil
}

// symbolsKey generates the cache key for the symbol list.
func (c *CachingMarket) symbolsKey() string {
	return fmt.Sprintf("%s:symbols", safe(c.namespace))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
