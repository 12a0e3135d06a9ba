package entity

// State is the immutable snapshot of the watch-list.
// A new State is produced on every change; holders must not modify the slices it references.
type State struct {
	TrackedStocks         Outcome[[]Stock]
	AvailableSymbols      Outcome[[]string]
	StockPendingAlertEdit *SelectedSymbol
}

// NewState returns the initial state: everything pending, no alert being edited.
func NewState() State {
	return State{
		TrackedStocks:    Pending[[]Stock](),
		AvailableSymbols: Pending[[]string](),
	}
}

// LoadedStocks returns the tracked stocks when they are loaded.
func (s State) LoadedStocks() ([]Stock, bool) {
	return s.TrackedStocks.Value()
}
