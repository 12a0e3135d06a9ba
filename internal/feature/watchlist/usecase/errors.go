// Package usecase implements the watch-list state store and the operations built on it.
package usecase

import "errors"

var (
	// ErrUnknownOrder is returned when a sort is requested by a name no ordering answers to.
	ErrUnknownOrder = errors.New("unknown sort order")

	// ErrBlankSymbol is returned when a symbol argument is empty after trimming.
	ErrBlankSymbol = errors.New("symbol must not be blank")

	// ErrStockNotReturned is returned when the market answered without the requested stock.
	ErrStockNotReturned = errors.New("stock not returned by market")

	// ErrNoPendingAlertEdit is returned when committing an alert edit that was never begun.
	ErrNoPendingAlertEdit = errors.New("no alert edit in progress")

	// ErrListenerNotComparable is returned when registering a listener that cannot be compared
	// for identity (func, map or slice values). Register a pointer instead.
	ErrListenerNotComparable = errors.New("listener is not comparable")
)
