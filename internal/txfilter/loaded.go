package txfilter

import (
	"time"

	"github.com/yfndev/ybudget/internal/model"
)

// LoadState distinguishes a collection that has not arrived yet from one
// that arrived empty. Overloading a nil slice for both confuses callers.
type LoadState int

const (
	// StateLoading means the underlying query has not returned yet.
	StateLoading LoadState = iota
	// StateEmpty means the query returned and matched nothing.
	StateEmpty
	// StateReady means the query returned items.
	StateReady
)

// Loaded is a tri-state transaction collection.
type Loaded struct {
	state LoadState
	items []model.Transaction
}

// Pending returns a collection in the loading state.
func Pending() Loaded {
	return Loaded{state: StateLoading}
}

// Of wraps a resolved query result.
func Of(items []model.Transaction) Loaded {
	if len(items) == 0 {
		return Loaded{state: StateEmpty}
	}
	return Loaded{state: StateReady, items: items}
}

// State returns the load state.
func (l Loaded) State() LoadState { return l.state }

// Items returns the resolved transactions; nil unless StateReady.
func (l Loaded) Items() []model.Transaction { return l.items }

// InRange applies the inclusive date-range filter, propagating the loading
// state so "no data yet" never turns into "empty result".
func (l Loaded) InRange(from, to time.Time) Loaded {
	if l.state == StateLoading {
		return l
	}
	return Of(InRange(l.items, from, to))
}

// Before applies the strict cutoff filter, propagating the loading state.
func (l Loaded) Before(cutoff time.Time, pred func(model.Transaction) bool) Loaded {
	if l.state == StateLoading {
		return l
	}
	return Of(Before(l.items, cutoff, pred))
}
