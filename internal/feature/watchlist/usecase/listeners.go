package usecase

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
)

// DefaultSaveTimeout bounds a single SaveSelections call made by SelectionPersister.
const DefaultSaveTimeout = 5 * time.Second

// SelectionPersister は追跡銘柄が読み込み済みの状態になるたびに設定を保存するリスナーです。
// 前回保存した内容と同じ場合は保存をスキップします。
type SelectionPersister struct {
	repo    SelectionRepository
	timeout time.Duration

	mu   sync.Mutex
	last []entity.SelectedSymbol
}

var _ Listener = (*SelectionPersister)(nil)

// NewSelectionPersister はSelectionPersisterの新しいインスタンスを生成します。
func NewSelectionPersister(repo SelectionRepository, timeout time.Duration) *SelectionPersister {
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &SelectionPersister{repo: repo, timeout: timeout}
}

// OnStateChange saves the selections of loaded tracked stocks.
func (p *SelectionPersister) OnStateChange(state entity.State) {
	stocks, ok := state.LoadedStocks()
	if !ok {
		return
	}
	selections := entity.Selections(stocks)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last != nil && slices.Equal(p.last, selections) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.repo.SaveSelections(ctx, selections); err != nil {
		slog.Error("failed to save selections", "count", len(selections), "error", err)
		return
	}
	p.last = selections
}
