// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"

	"stock_watchlist/internal/feature/watchlist/usecase"
	"stock_watchlist/internal/platform/cache"
	"stock_watchlist/internal/platform/externalapi/tickerapp"
	infrahttp "stock_watchlist/internal/platform/http"
)

// NewMarket creates a fully configured ticker app market with HTTP client.
// If Redis is available, the symbol list is cached until the next daily refresh.
func NewMarket(rdb *redis.Client) usecase.MarketSource {
	cfg := tickerapp.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(infrahttp.ClientConfig{Timeout: cfg.Timeout})
	market := tickerapp.NewTickerAppMarket(cfg, httpClient)
	if rdb == nil {
		return market
	}
	return cache.NewCachingMarket(rdb, cache.LoadRefreshConfig(), market, "tickers")
}
