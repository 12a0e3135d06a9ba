package di

import (
	"fmt"

	"stock_watchlist/internal/feature/watchlist/usecase"
)

// NewWatchlist builds the state store and usecase, and registers the listener that
// persists selections whenever the tracked stocks change.
func NewWatchlist(market usecase.MarketSource, repo usecase.SelectionRepository) (*usecase.WatchlistUsecase, error) {
	store := usecase.NewStore(usecase.NewSingleStockLoader(market))
	if err := store.RegisterListener(usecase.NewSelectionPersister(repo, usecase.DefaultSaveTimeout)); err != nil {
		return nil, fmt.Errorf("register selection persister: %w", err)
	}
	return usecase.NewWatchlistUsecase(store, market, repo), nil
}
