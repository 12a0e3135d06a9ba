package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	watchlistadapters "stock_watchlist/internal/feature/watchlist/adapters"
	"stock_watchlist/internal/feature/watchlist/usecase"
)

// NewSelectionRepository creates a SelectionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the SQL database.
func NewSelectionRepository(rdb *redis.Client, db *gorm.DB) usecase.SelectionRepository {
	if rdb != nil {
		return watchlistadapters.NewSelectionRedis(rdb, watchlistadapters.DefaultSelectionKey)
	}
	return watchlistadapters.NewSelectionRepository(db)
}
