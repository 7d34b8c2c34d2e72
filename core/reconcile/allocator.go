package reconcile

import "context"

// MaxSortFunc queries storage for the highest sort among active rows of a
// scope, zero for an empty scope.
type MaxSortFunc func(ctx context.Context, scopeID uint) (uint, error)

// Allocator hands out sort values for inserts during one batch operation.
//
// Each scope is seeded lazily from storage exactly once; every later
// allocation for that scope is pure arithmetic on the cached value. That
// keeps multiple inserts into the same scope within one batch collision-free
// without re-reading the max between them. An Allocator is built per batch
// and discarded with it; there is no process-wide state.
type Allocator struct {
	maxSort MaxSortFunc
	last    map[uint]uint
}

// NewAllocator creates an allocator seeded from the given max-sort query.
func NewAllocator(maxSort MaxSortFunc) *Allocator {
	return &Allocator{
		maxSort: maxSort,
		last:    make(map[uint]uint),
	}
}

// Next returns the next sort value for the scope: seed+1 on first use,
// then strictly increasing.
func (a *Allocator) Next(ctx context.Context, scopeID uint) (uint, error) {
	if err := a.seed(ctx, scopeID); err != nil {
		return 0, err
	}
	a.last[scopeID]++
	return a.last[scopeID], nil
}

// Raise records an explicitly supplied sort value so later allocations in
// the same batch start above it. Values at or below the running max are
// ignored.
func (a *Allocator) Raise(ctx context.Context, scopeID uint, sort uint) error {
	if err := a.seed(ctx, scopeID); err != nil {
		return err
	}
	if sort > a.last[scopeID] {
		a.last[scopeID] = sort
	}
	return nil
}

func (a *Allocator) seed(ctx context.Context, scopeID uint) error {
	if _, ok := a.last[scopeID]; ok {
		return nil
	}
	max, err := a.maxSort(ctx, scopeID)
	if err != nil {
		return err
	}
	a.last[scopeID] = max
	return nil
}
