package reconcile_test

import (
	"context"
	"sort"
	"testing"

	"catalog-service/core/apperr"
	"catalog-service/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow is the in-memory row the fake collection stores.
type fakeRow struct {
	ID      uint
	ScopeID uint
	Name    string
	Sort    uint
	Deleted bool
}

// fakeFields is the patch payload the fake collection understands.
type fakeFields struct {
	Name string
}

// fakeCollection is an in-memory Collection for engine tests.
type fakeCollection struct {
	rows   map[uint]*fakeRow
	nextID uint
}

func newFakeCollection(rows ...fakeRow) *fakeCollection {
	c := &fakeCollection{rows: make(map[uint]*fakeRow)}
	var maxID uint
	for i := range rows {
		r := rows[i]
		c.rows[r.ID] = &r
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	c.nextID = maxID + 1
	return c
}

func (c *fakeCollection) Owner(ctx context.Context, id uint) (uint, error) {
	r, ok := c.rows[id]
	if !ok || r.Deleted {
		return 0, apperr.NotFound("row %d not found", id)
	}
	return r.ScopeID, nil
}

func (c *fakeCollection) ActiveIDs(ctx context.Context, scopeID uint) ([]uint, error) {
	var ids []uint
	for _, r := range c.rows {
		if r.ScopeID == scopeID && !r.Deleted {
			ids = append(ids, r.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (c *fakeCollection) MaxSort(ctx context.Context, scopeID uint) (uint, error) {
	var max uint
	for _, r := range c.rows {
		if r.ScopeID == scopeID && !r.Deleted && r.Sort > max {
			max = r.Sort
		}
	}
	return max, nil
}

func (c *fakeCollection) Insert(ctx context.Context, scopeID uint, sortVal uint, fields any) (any, error) {
	f := fields.(fakeFields)
	row := &fakeRow{ID: c.nextID, ScopeID: scopeID, Name: f.Name, Sort: sortVal}
	c.nextID++
	c.rows[row.ID] = row
	return *row, nil
}

func (c *fakeCollection) Update(ctx context.Context, id uint, fields any) (any, error) {
	f := fields.(fakeFields)
	r := c.rows[id]
	if f.Name != "" {
		r.Name = f.Name
	}
	return *r, nil
}

func (c *fakeCollection) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r, ok := c.rows[id]
	if !ok || r.Deleted {
		return false, nil
	}
	r.Deleted = true
	return true, nil
}

func (c *fakeCollection) row(id uint) fakeRow { return *c.rows[id] }

func TestReconcile_InsertsIntoEmptyScopeGetSequentialSorts(t *testing.T) {
	coll := newFakeCollection()
	engine := reconcile.New(coll)

	patches := []reconcile.Patch{
		{Fields: fakeFields{Name: "a"}},
		{Fields: fakeFields{Name: "b"}},
		{Fields: fakeFields{Name: "c"}},
	}

	rows, err := engine.Reconcile(context.Background(), 1, patches, reconcile.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, row := range rows {
		r := row.(fakeRow)
		assert.Equal(t, uint(i+1), r.Sort, "sorts are {1..N} in input order")
	}
}

func TestReconcile_SortNeverReusesFreedSlot(t *testing.T) {
	// Active rows hold sorts 1 and 3; sort 2 was freed by a soft delete.
	coll := newFakeCollection(
		fakeRow{ID: 1, ScopeID: 1, Sort: 1},
		fakeRow{ID: 2, ScopeID: 1, Sort: 2, Deleted: true},
		fakeRow{ID: 3, ScopeID: 1, Sort: 3},
	)
	engine := reconcile.New(coll)

	rows, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{Fields: fakeFields{Name: "new"}},
	}, reconcile.Options{})
	require.NoError(t, err)

	assert.Equal(t, uint(4), rows[0].(fakeRow).Sort, "next insert is max(active)+1, never a freed slot")
}

func TestReconcile_ExplicitSortRaisesAllocator(t *testing.T) {
	coll := newFakeCollection()
	engine := reconcile.New(coll)

	rows, err := engine.Reconcile(context.Background(), reconcile.GlobalScope, []reconcile.Patch{
		{Sort: 5, Fields: fakeFields{Name: "pinned"}},
		{Fields: fakeFields{Name: "after"}},
	}, reconcile.Options{})
	require.NoError(t, err)

	assert.Equal(t, uint(5), rows[0].(fakeRow).Sort)
	assert.Equal(t, uint(6), rows[1].(fakeRow).Sort, "auto sort continues above the pinned value")
}

func TestReconcile_OmissionDeletes(t *testing.T) {
	coll := newFakeCollection(
		fakeRow{ID: 1, ScopeID: 1, Name: "one", Sort: 1},
		fakeRow{ID: 2, ScopeID: 1, Name: "two", Sort: 2},
		fakeRow{ID: 3, ScopeID: 1, Name: "three", Sort: 3},
	)
	engine := reconcile.New(coll)

	rows, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{ID: 1, Fields: fakeFields{Name: "one-edited"}},
		{ID: 2, Fields: fakeFields{Name: "two-edited"}},
		{Fields: fakeFields{Name: "four"}},
	}, reconcile.Options{DeleteOmitted: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "one-edited", coll.row(1).Name)
	assert.Equal(t, "two-edited", coll.row(2).Name)
	assert.True(t, coll.row(3).Deleted, "unmentioned row is soft-deleted")

	created := rows[2].(fakeRow)
	assert.False(t, coll.row(created.ID).Deleted, "row inserted by the batch survives omission deletion")
	assert.Equal(t, uint(4), created.Sort)
}

func TestReconcile_PureInsertBatchNeverDeletes(t *testing.T) {
	coll := newFakeCollection(fakeRow{ID: 1, ScopeID: 1, Sort: 1})
	engine := reconcile.New(coll)

	_, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{Fields: fakeFields{Name: "new"}},
	}, reconcile.Options{DeleteOmitted: true})
	require.NoError(t, err)

	assert.False(t, coll.row(1).Deleted, "omission deletion requires at least one update in the batch")
}

func TestReconcile_WithoutDeleteOmittedKeepsEverything(t *testing.T) {
	coll := newFakeCollection(
		fakeRow{ID: 1, ScopeID: 1, Sort: 1},
		fakeRow{ID: 2, ScopeID: 1, Sort: 2},
		fakeRow{ID: 3, ScopeID: 1, Sort: 3},
	)
	engine := reconcile.New(coll)

	_, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{ID: 1, Fields: fakeFields{Name: "edited"}},
	}, reconcile.Options{})
	require.NoError(t, err)

	assert.False(t, coll.row(2).Deleted)
	assert.False(t, coll.row(3).Deleted)
}

func TestReconcile_ScopeIsolation(t *testing.T) {
	coll := newFakeCollection(
		fakeRow{ID: 1, ScopeID: 1, Name: "a1", Sort: 1},
		fakeRow{ID: 2, ScopeID: 2, Name: "b1", Sort: 1},
		fakeRow{ID: 3, ScopeID: 2, Name: "b2", Sort: 2},
	)
	engine := reconcile.New(coll)

	_, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{ID: 1, Fields: fakeFields{Name: "a1-edited"}},
	}, reconcile.Options{DeleteOmitted: true})
	require.NoError(t, err)

	assert.False(t, coll.row(2).Deleted, "scope 2 rows untouched")
	assert.False(t, coll.row(3).Deleted)
	assert.Equal(t, "b1", coll.row(2).Name)
}

func TestReconcile_CrossScopeUpdateRejected(t *testing.T) {
	coll := newFakeCollection(fakeRow{ID: 1, ScopeID: 10, Name: "owned", Sort: 1})
	engine := reconcile.New(coll)

	_, err := engine.Reconcile(context.Background(), 20, []reconcile.Patch{
		{ID: 1, Fields: fakeFields{Name: "stolen"}},
	}, reconcile.Options{DeleteOmitted: true})

	assert.Equal(t, apperr.KindScopeConflict, apperr.KindOf(err))
	assert.Equal(t, "owned", coll.row(1).Name, "rejected update leaves the row unmodified")
}

func TestReconcile_UnknownIDAborts(t *testing.T) {
	coll := newFakeCollection()
	engine := reconcile.New(coll)

	_, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{ID: 99, Fields: fakeFields{Name: "ghost"}},
	}, reconcile.Options{})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReconcile_ResultsInEncounterOrder(t *testing.T) {
	coll := newFakeCollection(
		fakeRow{ID: 1, ScopeID: 1, Name: "u1", Sort: 1},
		fakeRow{ID: 2, ScopeID: 1, Name: "u2", Sort: 2},
	)
	engine := reconcile.New(coll)

	rows, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{Fields: fakeFields{Name: "i1"}},
		{ID: 2, Fields: fakeFields{Name: "u2-edited"}},
		{Fields: fakeFields{Name: "i2"}},
		{ID: 1, Fields: fakeFields{Name: "u1-edited"}},
	}, reconcile.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "i1", rows[0].(fakeRow).Name)
	assert.Equal(t, "u2-edited", rows[1].(fakeRow).Name)
	assert.Equal(t, "i2", rows[2].(fakeRow).Name)
	assert.Equal(t, "u1-edited", rows[3].(fakeRow).Name)
}

func TestReconcile_SoftDeletedRowIsNotFound(t *testing.T) {
	coll := newFakeCollection(fakeRow{ID: 1, ScopeID: 1, Sort: 1, Deleted: true})
	engine := reconcile.New(coll)

	_, err := engine.Reconcile(context.Background(), 1, []reconcile.Patch{
		{ID: 1, Fields: fakeFields{Name: "revive"}},
	}, reconcile.Options{})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
