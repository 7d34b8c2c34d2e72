package reconcile

import "context"

// GlobalScope is the scope id for collections that are not nested under a
// parent entity (the store collection itself).
const GlobalScope uint = 0

// Patch is one row of an upsert batch. A zero ID means insert; a non-zero ID
// means update. The split is decided once at batch ingestion, not re-tested
// throughout the algorithm.
type Patch struct {
	// ID identifies the row to update; zero requests an insert.
	ID uint

	// Sort optionally pins the ordering key for an insert. Zero lets the
	// allocator assign max(scope)+1. Explicit values raise the allocator's
	// running max so later inserts in the same batch do not collide.
	Sort uint

	// Fields is the collection-specific payload: all required fields for an
	// insert, the partial field set for an update.
	Fields any
}

// Options control a single Reconcile call.
type Options struct {
	// DeleteOmitted enables full replace-by-omission: active rows of the
	// scope that the batch does not mention by id are soft-deleted. It only
	// takes effect when the batch carried at least one update (a pure-insert
	// batch never wipes the scope).
	DeleteOmitted bool
}

// Collection is the persistence contract the engine operates on, implemented
// per entity kind on top of the repository layer.
type Collection interface {
	// Owner resolves the scope id an active row belongs to, or a NotFound
	// error when the id does not resolve to an active row.
	Owner(ctx context.Context, id uint) (uint, error)

	// ActiveIDs lists the ids of all active rows in the scope.
	ActiveIDs(ctx context.Context, scopeID uint) ([]uint, error)

	// MaxSort returns the highest sort among active rows of the scope, zero
	// when the scope is empty or fully soft-deleted.
	MaxSort(ctx context.Context, scopeID uint) (uint, error)

	// Insert creates a row under the scope with the allocated sort and
	// returns the persisted row.
	Insert(ctx context.Context, scopeID uint, sort uint, fields any) (any, error)

	// Update applies the partial fields to the row and returns the re-read
	// row. A write that affects no rows is a Persistence error.
	Update(ctx context.Context, id uint, fields any) (any, error)

	// SoftDelete marks the row deleted; false when no row was affected.
	SoftDelete(ctx context.Context, id uint) (bool, error)
}
