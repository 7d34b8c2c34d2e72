package reconcile

import (
	"context"

	"catalog-service/core/apperr"
)

// Engine applies upsert batches to a scoped collection.
type Engine struct {
	coll Collection
}

// New creates an engine over the given collection.
func New(coll Collection) *Engine {
	return &Engine{coll: coll}
}

// Reconcile applies the batch to the scope and returns the affected rows in
// encounter order (inserts interleaved with updates as supplied, never
// re-sorted).
//
// Updates are looked up first: a missing row aborts with NotFound, a row
// owned by a different scope aborts with ScopeConflict (cross-scope updates
// are rejected, never silently reassigned). Inserts receive their sort from a
// fresh per-batch allocator. When Options.DeleteOmitted is set and the batch
// carried at least one update, every active row of the scope the batch did
// not mention is soft-deleted afterwards.
//
// The first failing item aborts the whole batch. Callers are expected to run
// Reconcile inside a transaction so an abort leaves no partial writes.
func (e *Engine) Reconcile(ctx context.Context, scopeID uint, patches []Patch, opts Options) ([]any, error) {
	alloc := NewAllocator(e.coll.MaxSort)

	// Snapshot the scope before applying anything: the deletion set is
	// "rows that existed and were not mentioned", so rows inserted by this
	// very batch must not appear in it.
	var existing []uint
	if opts.DeleteOmitted {
		ids, err := e.coll.ActiveIDs(ctx, scopeID)
		if err != nil {
			return nil, err
		}
		existing = ids
	}

	results := make([]any, 0, len(patches))
	retained := make(map[uint]struct{}, len(patches))

	for _, p := range patches {
		if p.ID == 0 {
			row, err := e.insert(ctx, alloc, scopeID, p)
			if err != nil {
				return nil, err
			}
			results = append(results, row)
			continue
		}

		owner, err := e.coll.Owner(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if owner != scopeID {
			return nil, apperr.ScopeConflict("row %d belongs to scope %d, not %d", p.ID, owner, scopeID)
		}

		row, err := e.coll.Update(ctx, p.ID, p.Fields)
		if err != nil {
			return nil, err
		}
		retained[p.ID] = struct{}{}
		results = append(results, row)
	}

	// Replace-by-omission only applies when the caller named surviving rows.
	if opts.DeleteOmitted && len(retained) > 0 {
		if err := e.deleteOmitted(ctx, existing, retained); err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (e *Engine) insert(ctx context.Context, alloc *Allocator, scopeID uint, p Patch) (any, error) {
	sort := p.Sort
	if sort == 0 {
		next, err := alloc.Next(ctx, scopeID)
		if err != nil {
			return nil, err
		}
		sort = next
	} else if err := alloc.Raise(ctx, scopeID, sort); err != nil {
		return nil, err
	}
	return e.coll.Insert(ctx, scopeID, sort, p.Fields)
}

func (e *Engine) deleteOmitted(ctx context.Context, existing []uint, retained map[uint]struct{}) error {
	for _, id := range existing {
		if _, ok := retained[id]; ok {
			continue
		}
		ok, err := e.coll.SoftDelete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence(nil, "soft delete of row %d affected no rows", id)
		}
	}
	return nil
}
