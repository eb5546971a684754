package places

import (
	"fmt"
	"sync"
)

// CallKind is a billable kind of upstream call.
type CallKind string

const (
	CallSearch  CallKind = "search"
	CallDetails CallKind = "details"
	CallRoute   CallKind = "route"
)

// Limits are per-request ceilings for each call kind.
type Limits struct {
	Search  int
	Details int
	Route   int
}

func DefaultLimits() Limits {
	return Limits{Search: 3, Details: 6, Route: 2}
}

// Usage is a point-in-time count of reserved calls.
type Usage struct {
	Search  int `json:"search"`
	Details int `json:"details"`
	Route   int `json:"route"`
}

// CallBudget counts upstream calls for one request. Counters only grow
// and never pass their ceiling. It is safe for concurrent use.
type CallBudget struct {
	mu     sync.Mutex
	limits Limits
	used   Usage
}

// Clamp keeps every ceiling between zero and its default.
func (l Limits) Clamp() Limits {
	d := DefaultLimits()
	return Limits{
		Search:  min(max(l.Search, 0), d.Search),
		Details: min(max(l.Details, 0), d.Details),
		Route:   min(max(l.Route, 0), d.Route),
	}
}

// NewCallBudget starts a budget at zero usage. Limits above the defaults
// are clamped to them.
func NewCallBudget(limits Limits) *CallBudget {
	return &CallBudget{limits: limits.Clamp()}
}

// Reserve takes one call of the given kind, failing with
// ErrBudgetExhausted when none are left.
func (b *CallBudget) Reserve(kind CallKind) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	used, limit := b.slot(kind)
	if used == nil {
		return fmt.Errorf("unknown call kind %q", kind)
	}
	if *used >= limit {
		return fmt.Errorf("%s: %w (%d/%d)", kind, ErrBudgetExhausted, *used, limit)
	}
	*used++
	return nil
}

// Remaining returns how many calls of kind are still available.
func (b *CallBudget) Remaining(kind CallKind) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	used, limit := b.slot(kind)
	if used == nil {
		return 0
	}
	return limit - *used
}

func (b *CallBudget) Snapshot() Usage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

func (b *CallBudget) slot(kind CallKind) (*int, int) {
	switch kind {
	case CallSearch:
		return &b.used.Search, b.limits.Search
	case CallDetails:
		return &b.used.Details, b.limits.Details
	case CallRoute:
		return &b.used.Route, b.limits.Route
	default:
		return nil, 0
	}
}
