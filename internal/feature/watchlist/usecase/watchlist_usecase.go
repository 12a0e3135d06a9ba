package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"stock_watchlist/internal/feature/watchlist/domain/alerting"
	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/domain/ordering"
)

// MarketSource は銘柄一覧と価格を取得する外部APIを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketSource interface {
	// LoadAllSymbols は追加可能な銘柄シンボルの一覧を返します。
	LoadAllSymbols(ctx context.Context) ([]string, error)
	// LoadStocks は指定された銘柄の最新スナップショットを返します。順序は保証されません。
	LoadStocks(ctx context.Context, selections []entity.SelectedSymbol) ([]entity.Stock, error)
}

// SymbolCacheInvalidator is implemented by market sources that cache the symbol list.
type SymbolCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SelectionRepository はウォッチリスト設定の永続化を抽象化します。
type SelectionRepository interface {
	// LoadSelections は保存済みの設定を返します。未保存・破損時は空のスライスを返します。
	LoadSelections(ctx context.Context) ([]entity.SelectedSymbol, error)
	// SaveSelections は設定を順序通りに保存します。
	SaveSelections(ctx context.Context, selections []entity.SelectedSymbol) error
}

type singleStockLoader struct {
	market MarketSource
}

var _ StockLoader = (*singleStockLoader)(nil)

// NewSingleStockLoader returns a StockLoader that asks market for one symbol without an alert threshold.
func NewSingleStockLoader(market MarketSource) *singleStockLoader {
	return &singleStockLoader{market: market}
}

// LoadStock loads the snapshot for symbol. ErrStockNotReturned is returned when the
// market response does not contain it.
func (l *singleStockLoader) LoadStock(ctx context.Context, symbol string) (entity.Stock, error) {
	stocks, err := l.market.LoadStocks(ctx, []entity.SelectedSymbol{{Symbol: symbol}})
	if err != nil {
		return entity.Stock{}, fmt.Errorf("load stock %s: %w", symbol, err)
	}
	for _, s := range stocks {
		if strings.EqualFold(s.Symbol, symbol) {
			return s, nil
		}
	}
	return entity.Stock{}, fmt.Errorf("%w: %s", ErrStockNotReturned, symbol)
}

// WatchlistUsecase はストアへの操作と外部データの読み込みをまとめたユースケースです。
type WatchlistUsecase struct {
	store      *Store
	market     MarketSource
	selections SelectionRepository
	tracker    *ordering.Tracker
}

// NewWatchlistUsecase はWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(store *Store, market MarketSource, selections SelectionRepository) *WatchlistUsecase {
	return &WatchlistUsecase{
		store:      store,
		market:     market,
		selections: selections,
		tracker:    ordering.NewTracker(nil),
	}
}

// Store returns the underlying state store.
func (u *WatchlistUsecase) Store() *Store { return u.store }

// State returns the current state.
func (u *WatchlistUsecase) State() entity.State { return u.store.State() }

// CurrentOrder returns the order and direction last requested through Sort.
func (u *WatchlistUsecase) CurrentOrder() (*ordering.Order, ordering.Direction) {
	return u.tracker.Current()
}

// ReloadTrackedStocks は保存済みの設定から追跡銘柄を読み込み直します。
// 読み込み中はPending、失敗時はFailedがストアに設定されます。
func (u *WatchlistUsecase) ReloadTrackedStocks(ctx context.Context) error {
	u.store.ReplaceTrackedStocks(entity.Pending[[]entity.Stock]())

	selections, err := u.selections.LoadSelections(ctx)
	if err != nil {
		err = fmt.Errorf("load selections: %w", err)
		u.store.ReplaceTrackedStocks(entity.Failed[[]entity.Stock](err))
		return err
	}
	selections = entity.SanitizeSelections(selections)

	stocks, err := u.market.LoadStocks(ctx, selections)
	if err != nil {
		err = fmt.Errorf("load stocks: %w", err)
		u.store.ReplaceTrackedStocks(entity.Failed[[]entity.Stock](err))
		return err
	}

	u.store.ReplaceTrackedStocks(entity.Ready(orderBySelection(stocks, selections)))
	slog.Info("tracked stocks reloaded", "count", len(stocks))
	return nil
}

// ReloadAvailableSymbols は追加可能な銘柄一覧を読み込み直します。
// force が true の場合、キャッシュを破棄してから取得します。
func (u *WatchlistUsecase) ReloadAvailableSymbols(ctx context.Context, force bool) error {
	u.store.ReplaceAvailableSymbols(entity.Pending[[]string]())

	if inv, ok := u.market.(SymbolCacheInvalidator); ok && force {
		if err := inv.Invalidate(ctx); err != nil {
			// キャッシュ破棄の失敗は致命的ではない
			slog.Warn("failed to invalidate symbol cache", "error", err)
		}
	}

	symbols, err := u.market.LoadAllSymbols(ctx)
	if err != nil {
		err = fmt.Errorf("load symbols: %w", err)
		u.store.ReplaceAvailableSymbols(entity.Failed[[]string](err))
		return err
	}
	u.store.ReplaceAvailableSymbols(entity.Ready(symbols))
	slog.Info("available symbols reloaded", "count", len(symbols), "force", force)
	return nil
}

// AddSymbol adds symbol to the watch-list. See Store.AddSymbol.
func (u *WatchlistUsecase) AddSymbol(ctx context.Context, symbol string) (bool, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return false, ErrBlankSymbol
	}
	return u.store.AddSymbol(ctx, symbol)
}

// RemoveSymbol removes symbol from the watch-list.
func (u *WatchlistUsecase) RemoveSymbol(symbol string) bool {
	return u.store.RemoveSymbol(symbol)
}

// Sort は名前で指定された順序で追跡銘柄を並べ替えます。
// direction が nil の場合、同じ順序を続けて指定すると昇順と降順が切り替わります。
func (u *WatchlistUsecase) Sort(orderName string, direction *ordering.Direction) (bool, error) {
	order, ok := ordering.Lookup(orderName)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownOrder, orderName)
	}
	var compare ordering.Comparator
	if direction != nil {
		compare = u.tracker.RequestDirection(order, *direction)
	} else {
		compare = u.tracker.Request(order)
	}
	return u.store.SortTrackedStocks(compare), nil
}

// BeginAlertEdit marks the tracked stock symbol as the one whose alert is being edited.
func (u *WatchlistUsecase) BeginAlertEdit(symbol string) bool {
	stocks, ok := u.store.State().LoadedStocks()
	if !ok {
		return false
	}
	idx := slices.IndexFunc(stocks, func(s entity.Stock) bool { return s.Symbol == symbol })
	if idx < 0 {
		return false
	}
	sel := stocks[idx].Selection()
	u.store.SetStockPendingAlertEdit(&sel)
	return true
}

// CommitAlertEdit applies percent to the stock being edited and ends the edit.
// The bool reports whether the stock was still tracked.
func (u *WatchlistUsecase) CommitAlertEdit(percent float64) (bool, error) {
	pending := u.store.State().StockPendingAlertEdit
	if pending == nil {
		return false, ErrNoPendingAlertEdit
	}
	applied := u.store.SetAlertThreshold(pending.Symbol, percent)
	u.store.SetStockPendingAlertEdit(nil)
	return applied, nil
}

// CancelAlertEdit ends the edit without changing anything. It returns false when no edit was in progress.
func (u *WatchlistUsecase) CancelAlertEdit() bool {
	if u.store.State().StockPendingAlertEdit == nil {
		return false
	}
	u.store.SetStockPendingAlertEdit(nil)
	return true
}

// SetAlertThreshold sets the alert threshold of a tracked stock.
func (u *WatchlistUsecase) SetAlertThreshold(symbol string, percent float64) bool {
	return u.store.SetAlertThreshold(symbol, percent)
}

// RemoveAlert disables the alert of a tracked stock.
func (u *WatchlistUsecase) RemoveAlert(symbol string) bool {
	return u.store.SetAlertThreshold(symbol, 0)
}

// Alerts evaluates the tracked stocks, ordered by symbol.
// The result is pending or failed whenever the tracked stocks are.
func (u *WatchlistUsecase) Alerts() entity.Outcome[alerting.Result] {
	return EvaluateAlerts(u.store.State())
}

// EvaluateAlerts evaluates the tracked stocks of state ordered by symbol.
func EvaluateAlerts(state entity.State) entity.Outcome[alerting.Result] {
	return entity.MapOutcome(state.TrackedStocks, func(stocks []entity.Stock) alerting.Result {
		sorted := slices.Clone(stocks)
		slices.SortStableFunc(sorted, ordering.BySymbol.Compare)
		return alerting.Evaluate(sorted)
	})
}

// orderBySelection orders stocks as their symbols appear in selections.
// Stocks missing from selections keep their relative order at the end.
func orderBySelection(stocks []entity.Stock, selections []entity.SelectedSymbol) []entity.Stock {
	rank := make(map[string]int, len(selections))
	for i, s := range selections {
		rank[s.Symbol] = i
	}
	position := func(s entity.Stock) int {
		if r, ok := rank[s.Symbol]; ok {
			return r
		}
		return len(selections)
	}
	out := slices.Clone(stocks)
	slices.SortStableFunc(out, func(a, b entity.Stock) int { return position(a) - position(b) })
	return out
}
