// Package reconcile implements the batch upsert engine for scoped catalog
// collections.
//
// A batch mixes inserts (patches without an id), updates (patches with an
// id) and, for store-scoped product batches, deletion-by-omission: active
// rows of the scope the batch does not mention are soft-deleted, yielding
// full replace semantics in a single request.
//
// # Architecture
//
// The package has two components:
//
//  1. Allocator: hands out sort values for inserts. Per batch and per scope
//     it reads the stored max once, then counts upward in memory, so several
//     inserts into one scope within a batch never collide and never reuse a
//     value an active row holds.
//
//  2. Engine: partitions the batch by presence of id, applies updates (with
//     a strict scope-ownership check), inserts with allocated sorts, and
//     finally soft-deletes the omitted rows. Results come back in encounter
//     order. The first failing item aborts the batch.
//
// The Engine is generic over the Collection interface; each entity kind
// (stores globally, products per store) supplies an implementation backed by
// its repository. Callers wrap Reconcile in a database transaction so an
// aborted batch leaves no partial writes.
//
// # Usage Example
//
//	engine := reconcile.New(coll) // coll implements Collection
//	rows, err := engine.Reconcile(ctx, storeID, patches, reconcile.Options{
//	    DeleteOmitted: true,
//	})
package reconcile
