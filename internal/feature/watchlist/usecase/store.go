package usecase

import (
	"context"
	"math"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"stock_watchlist/internal/feature/watchlist/domain/entity"
	"stock_watchlist/internal/feature/watchlist/domain/ordering"
)

// Listener receives every new state after a change.
// Identity is interface equality, so the same value must be passed to
// RegisterListener and UnregisterListener; pointer receivers work best.
// OnStateChange runs synchronously on the mutating goroutine. It may read
// Store.State but must not call mutating Store methods.
type Listener interface {
	OnStateChange(state entity.State)
}

// StockLoader fetches a fresh snapshot for a single symbol.
type StockLoader interface {
	LoadStock(ctx context.Context, symbol string) (entity.Stock, error)
}

// Store owns the watch-list state. Every mutation replaces the state wholesale and
// notifies the registered listeners in the order the mutations were applied.
type Store struct {
	loader StockLoader

	// mu serialises read-modify-write sequences on state.
	mu    sync.Mutex
	state atomic.Pointer[entity.State]

	listenersMu sync.RWMutex
	listeners   []Listener

	// notifyMu is taken before mu is released so that notifications keep mutation order.
	notifyMu sync.Mutex
}

// NewStore returns a store in the initial all-pending state.
func NewStore(loader StockLoader) *Store {
	s := &Store{loader: loader}
	initial := entity.NewState()
	s.state.Store(&initial)
	return s
}

// State returns the current state. It never blocks on a running mutation.
func (s *Store) State() entity.State {
	return *s.state.Load()
}

// ReplaceTrackedStocks sets the tracked stocks unconditionally.
func (s *Store) ReplaceTrackedStocks(outcome entity.Outcome[[]entity.Stock]) {
	s.update(func(st entity.State) (entity.State, bool) {
		st.TrackedStocks = outcome
		return st, true
	})
}

// ReplaceAvailableSymbols sets the addable symbols unconditionally.
func (s *Store) ReplaceAvailableSymbols(outcome entity.Outcome[[]string]) {
	s.update(func(st entity.State) (entity.State, bool) {
		st.AvailableSymbols = outcome
		return st, true
	})
}

// AddSymbol fetches a fresh snapshot for symbol and appends it to the tracked stocks,
// replacing any previous entry and keeping its alert threshold.
// It returns false when the tracked stocks are not loaded, either before the fetch
// or once it completes. Loader errors are returned as is.
func (s *Store) AddSymbol(ctx context.Context, symbol string) (bool, error) {
	if _, ok := s.State().LoadedStocks(); !ok {
		return false, nil
	}

	// ロード中はロックを保持しない。他の操作はこの間も進行できる
	fresh, err := s.loader.LoadStock(ctx, symbol)
	if err != nil {
		return false, err
	}

	applied := s.update(func(st entity.State) (entity.State, bool) {
		stocks, ok := st.LoadedStocks()
		if !ok {
			return st, false
		}
		threshold := 0.0
		next := make([]entity.Stock, 0, len(stocks)+1)
		for _, existing := range stocks {
			if existing.Symbol == symbol || existing.Symbol == fresh.Symbol {
				threshold = existing.AlertThresholdPercent
				continue
			}
			next = append(next, existing)
		}
		next = append(next, fresh.WithAlertThreshold(threshold))
		st.TrackedStocks = entity.Ready(next)
		return st, true
	})
	return applied, nil
}

// RemoveSymbol removes the entry for symbol. It returns false, leaving the state
// untouched, when the tracked stocks are not loaded or do not contain symbol.
func (s *Store) RemoveSymbol(symbol string) bool {
	return s.update(func(st entity.State) (entity.State, bool) {
		stocks, ok := st.LoadedStocks()
		if !ok {
			return st, false
		}
		idx := slices.IndexFunc(stocks, func(x entity.Stock) bool { return x.Symbol == symbol })
		if idx < 0 {
			return st, false
		}
		st.TrackedStocks = entity.Ready(slices.Delete(slices.Clone(stocks), idx, idx+1))
		return st, true
	})
}

// SortTrackedStocks replaces the tracked stocks with a stably sorted copy.
// Requests made while the stocks are pending or failed are dropped and return false.
func (s *Store) SortTrackedStocks(compare ordering.Comparator) bool {
	if compare == nil {
		return false
	}
	return s.update(func(st entity.State) (entity.State, bool) {
		stocks, ok := st.LoadedStocks()
		if !ok {
			return st, false
		}
		sorted := slices.Clone(stocks)
		slices.SortStableFunc(sorted, compare)
		st.TrackedStocks = entity.Ready(sorted)
		return st, true
	})
}

// SetStockPendingAlertEdit sets the stock whose alert is being edited; nil clears it.
func (s *Store) SetStockPendingAlertEdit(selection *entity.SelectedSymbol) {
	var target *entity.SelectedSymbol
	if selection != nil {
		c := *selection
		target = &c
	}
	s.update(func(st entity.State) (entity.State, bool) {
		st.StockPendingAlertEdit = target
		return st, true
	})
}

// SetAlertThreshold changes the alert threshold of a tracked stock in place.
// Non-finite values are stored as 0. It returns false when the stocks are not
// loaded or do not contain symbol.
func (s *Store) SetAlertThreshold(symbol string, percent float64) bool {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		percent = 0
	}
	return s.update(func(st entity.State) (entity.State, bool) {
		stocks, ok := st.LoadedStocks()
		if !ok {
			return st, false
		}
		idx := slices.IndexFunc(stocks, func(x entity.Stock) bool { return x.Symbol == symbol })
		if idx < 0 {
			return st, false
		}
		next := slices.Clone(stocks)
		next[idx] = next[idx].WithAlertThreshold(percent)
		st.TrackedStocks = entity.Ready(next)
		return st, true
	})
}

// RegisterListener adds l to the listeners. Registering the same listener twice has no effect.
func (s *Store) RegisterListener(l Listener) error {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return ErrListenerNotComparable
	}
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	if slices.Contains(s.listeners, l) {
		return nil
	}
	s.listeners = append(s.listeners, l)
	return nil
}

// UnregisterListener removes l and reports whether it was registered.
func (s *Store) UnregisterListener(l Listener) bool {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return false
	}
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	idx := slices.Index(s.listeners, l)
	if idx < 0 {
		return false
	}
	s.listeners = slices.Delete(s.listeners, idx, idx+1)
	return true
}

// HasListeners reports whether any listener is registered.
func (s *Store) HasListeners() bool {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()
	return len(s.listeners) > 0
}

// update applies fn to the current state. When fn reports a change the new state is
// published and every listener is notified before update returns.
func (s *Store) update(fn func(entity.State) (entity.State, bool)) bool {
	s.mu.Lock()
	next, changed := fn(s.State())
	if !changed {
		s.mu.Unlock()
		return false
	}
	s.state.Store(&next)

	s.listenersMu.RLock()
	listeners := slices.Clone(s.listeners)
	s.listenersMu.RUnlock()

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, l := range listeners {
		l.OnStateChange(next)
	}
	return true
}
