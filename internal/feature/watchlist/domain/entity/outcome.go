package entity

import "errors"

// ErrRetrievalFailed is used when a failed Outcome is created without a cause.
var ErrRetrievalFailed = errors.New("retrieval failed")

// OutcomeKind enumerates the states of an asynchronous load.
type OutcomeKind int

const (
	// OutcomePending means the data is not available yet.
	OutcomePending OutcomeKind = iota
	// OutcomeReady means the data was loaded successfully.
	OutcomeReady
	// OutcomeFailed means the load terminated with an error.
	OutcomeFailed
)

// String returns the lower-case name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomePending:
		return "pending"
	case OutcomeReady:
		return "ready"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of an asynchronous load: exactly one of pending, ready or failed.
// The zero value is pending.
type Outcome[T any] struct {
	kind  OutcomeKind
	value T
	err   error
}

// Pending returns an outcome whose data is not available yet.
func Pending[T any]() Outcome[T] {
	return Outcome[T]{kind: OutcomePending}
}

// Ready returns a successfully loaded outcome.
func Ready[T any](value T) Outcome[T] {
	return Outcome[T]{kind: OutcomeReady, value: value}
}

// Failed returns a terminally failed outcome.
func Failed[T any](err error) Outcome[T] {
	if err == nil {
		err = ErrRetrievalFailed
	}
	return Outcome[T]{kind: OutcomeFailed, err: err}
}

// Kind returns which of the three states holds.
func (o Outcome[T]) Kind() OutcomeKind { return o.kind }

// IsReady reports whether the outcome holds a loaded value.
func (o Outcome[T]) IsReady() bool { return o.kind == OutcomeReady }

// Value returns the loaded value and true, or the zero value and false.
func (o Outcome[T]) Value() (T, bool) {
	if o.kind != OutcomeReady {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Err returns the failure cause, or nil unless the outcome failed.
func (o Outcome[T]) Err() error {
	if o.kind != OutcomeFailed {
		return nil
	}
	return o.err
}

// Match calls exactly one of the handlers depending on the state.
func (o Outcome[T]) Match(pending func(), ready func(T), failed func(error)) {
	switch o.kind {
	case OutcomeReady:
		ready(o.value)
	case OutcomeFailed:
		failed(o.err)
	default:
		pending()
	}
}

// MapOutcome transforms a ready value, passing pending and failed states through.
func MapOutcome[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	switch o.kind {
	case OutcomeReady:
		return Ready(f(o.value))
	case OutcomeFailed:
		return Failed[U](o.err)
	default:
		return Pending[U]()
	}
}
