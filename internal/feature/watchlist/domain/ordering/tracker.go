package ordering

import "sync"

// Direction is the sort direction.
type Direction int

const (
	// Ascending applies an order as is.
	Ascending Direction = iota
	// Descending applies an order reversed.
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection parses "asc"/"ascending" or "desc"/"descending".
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Ascending, false
	}
}

// Tracker remembers the last requested order and its direction for one sortable list.
type Tracker struct {
	mu        sync.Mutex
	current   *Order
	direction Direction
}

// NewTracker creates a tracker. preferred may be nil.
func NewTracker(preferred *Order) *Tracker {
	return &Tracker{current: preferred, direction: Ascending}
}

// Request returns a comparator for order. Requesting the order that is already
// current flips the direction; any other order is adopted ascending.
func (t *Tracker) Request(order *Order) Comparator {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == order {
		if t.direction == Ascending {
			t.direction = Descending
		} else {
			t.direction = Ascending
		}
	} else {
		t.current = order
		t.direction = Ascending
	}
	return t.comparator()
}

// RequestDirection adopts order with the given direction without toggling.
func (t *Tracker) RequestDirection(order *Order, direction Direction) Comparator {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = order
	t.direction = direction
	return t.comparator()
}

// Current returns the remembered order (nil if none) and direction.
func (t *Tracker) Current() (*Order, Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.direction
}

func (t *Tracker) comparator() Comparator {
	if t.direction == Ascending {
		return t.current.Comparator()
	}
	return Reverse(t.current.Comparator())
}
