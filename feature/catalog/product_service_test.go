package catalog_test

import (
	"context"
	"testing"

	"catalog-service/core/apperr"
	"catalog-service/feature/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedStores creates n empty stores and returns their ids.
func seedStores(t *testing.T, svc *catalog.Service, names ...string) []uint {
	t.Helper()

	items := make([]catalog.StoreBatchItem, 0, len(names))
	for _, name := range names {
		items = append(items, catalog.StoreBatchItem{Name: str(name)})
	}
	created, err := svc.CreateStores(context.Background(), items)
	require.NoError(t, err)

	ids := make([]uint, 0, len(created))
	for _, s := range created {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestCreateProducts_PerStoreAllocation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("a1")},
		{StoreID: stores[1], Name: str("b1")},
		{StoreID: stores[0], Name: str("a2")},
		{StoreID: stores[1], Name: str("b2")},
	})
	require.NoError(t, err)
	require.Len(t, created, 4)

	// Results keep request order; sorts run independently per store.
	assert.Equal(t, "a1", created[0].Name)
	assert.Equal(t, uint(1), created[0].Sort)
	assert.Equal(t, "b1", created[1].Name)
	assert.Equal(t, uint(1), created[1].Sort)
	assert.Equal(t, uint(2), created[2].Sort)
	assert.Equal(t, uint(2), created[3].Sort)
}

func TestCreateProducts_UnknownStore(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateProducts(context.Background(), []catalog.ProductBatchItem{
		{StoreID: 9999, Name: str("orphan")},
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateProducts_RequiresStoreID(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateProducts(context.Background(), []catalog.ProductBatchItem{
		{Name: str("nowhere")},
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateProductsFlat(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("a1"), Price: num(10)},
		{StoreID: stores[1], Name: str("b1"), Price: num(20)},
	})
	require.NoError(t, err)

	// A mixed batch: one update, one insert, across two stores.
	updated, err := svc.UpdateProductsFlat(ctx, []catalog.ProductBatchItem{
		{ID: created[0].ID, StoreID: stores[0], Price: num(15)},
		{StoreID: stores[1], Name: str("b2")},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, uint(15), updated[0].Price)
	assert.Equal(t, "a1", updated[0].Name)
	assert.Equal(t, uint(2), updated[1].Sort)

	// The update-only store keeps its unmentioned rows: the flat batch
	// never deletes by omission.
	remaining, err := svc.ListStoreProducts(ctx, stores[1])
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestUpdateProductsFlat_MissingStoreID(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("p")},
	})
	require.NoError(t, err)

	_, err = svc.UpdateProductsFlat(ctx, []catalog.ProductBatchItem{
		{ID: created[0].ID, Price: num(5)},
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdateProductsFlat_CrossStoreRejected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("a1"), Price: num(10)},
	})
	require.NoError(t, err)

	// Declaring another store for an existing row is a conflict, not a move.
	_, err = svc.UpdateProductsFlat(ctx, []catalog.ProductBatchItem{
		{ID: created[0].ID, StoreID: stores[1], Price: num(99)},
	})
	assert.Equal(t, apperr.KindScopeConflict, apperr.KindOf(err))

	// The rejected row is untouched.
	product, err := svc.GetProduct(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, stores[0], product.StoreID)
	assert.Equal(t, uint(10), product.Price)
}

func TestReconcileStoreProducts_DeletesOmitted(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("keep")},
		{StoreID: stores[0], Name: str("drop")},
	})
	require.NoError(t, err)

	result, err := svc.ReconcileStoreProducts(ctx, stores[0], []catalog.ProductBatchItem{
		{ID: created[0].ID, Price: num(42)},
		{Name: str("fresh")},
	})
	require.NoError(t, err)
	require.Len(t, result, 2)

	remaining, err := svc.ListStoreProducts(ctx, stores[0])
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "keep", remaining[0].Name)
	assert.Equal(t, uint(42), remaining[0].Price)
	// The row inserted by this very batch is not swept up by omission.
	assert.Equal(t, "fresh", remaining[1].Name)
	assert.Equal(t, uint(3), remaining[1].Sort)

	_, err = svc.GetProduct(ctx, created[1].ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReconcileStoreProducts_PureInsertKeepsExisting(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	_, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("existing")},
	})
	require.NoError(t, err)

	// No update in the batch, so omission deletes nothing.
	_, err = svc.ReconcileStoreProducts(ctx, stores[0], []catalog.ProductBatchItem{
		{Name: str("new one")},
	})
	require.NoError(t, err)

	remaining, err := svc.ListStoreProducts(ctx, stores[0])
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestReconcileStoreProducts_ForeignDeclaredStore(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	_, err := svc.ReconcileStoreProducts(ctx, stores[0], []catalog.ProductBatchItem{
		{StoreID: stores[1], Name: str("stray")},
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestReconcileStoreProducts_ForeignRowRejected(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("p"), Price: num(10)},
	})
	require.NoError(t, err)

	// The batch targets store "b" but names a row of store "a": conflict,
	// and the transaction leaves the row exactly as it was.
	_, err = svc.ReconcileStoreProducts(ctx, stores[1], []catalog.ProductBatchItem{
		{ID: created[0].ID, Price: num(999)},
	})
	assert.Equal(t, apperr.KindScopeConflict, apperr.KindOf(err))

	product, err := svc.GetProduct(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, stores[0], product.StoreID)
	assert.Equal(t, uint(10), product.Price)
}

func TestReconcileStoreProducts_UnknownStore(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.ReconcileStoreProducts(context.Background(), 9999, nil)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListProducts_JoinOrderAndPagination(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateStores(ctx, []catalog.StoreBatchItem{
		{Name: str("second"), Sort: num(2), Products: []catalog.ProductBatchItem{
			{Name: str("s2p1")},
		}},
		{Name: str("first"), Sort: num(1), Products: []catalog.ProductBatchItem{
			{Name: str("s1p1")},
			{Name: str("s1p2")},
		}},
	})
	require.NoError(t, err)

	page, err := svc.ListProducts(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// Store sort dominates product sort.
	assert.Equal(t, "first", page.Items[0].Store.Name)
	assert.Equal(t, "s1p1", page.Items[0].Product.Name)
	assert.Equal(t, "s1p2", page.Items[1].Product.Name)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.LastPage)

	second, err := svc.ListProducts(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "s2p1", second.Items[0].Product.Name)

	// Deleting a store removes its products from the listing entirely.
	require.NoError(t, svc.DeleteStore(ctx, created[0].ID))
	page, err = svc.ListProducts(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
}

func TestListProducts_PerPageClamped(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	items := make([]catalog.ProductBatchItem, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, catalog.ProductBatchItem{StoreID: stores[0], Name: str("p")})
	}
	_, err := svc.CreateProducts(ctx, items)
	require.NoError(t, err)

	page, err := svc.ListProducts(ctx, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 10, page.Pagination.PerPage)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.Pagination.LastPage)
}

func TestUpdateProduct_MoveBetweenStores(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("mover")},
	})
	require.NoError(t, err)

	moved, err := svc.UpdateProduct(ctx, created[0].ID, catalog.ProductUpdateInput{
		StoreID: &stores[1],
		Price:   num(77),
	})
	require.NoError(t, err)
	assert.Equal(t, stores[1], moved.StoreID)
	assert.Equal(t, uint(77), moved.Price)
	require.NotNil(t, moved.Store)
	assert.Equal(t, "b", moved.Store.Name)
}

func TestUpdateProduct_MoveToDeletedStore(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a", "b")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("stuck")},
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteStore(ctx, stores[1]))

	_, err = svc.UpdateProduct(ctx, created[0].ID, catalog.ProductUpdateInput{StoreID: &stores[1]})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateProduct_IdenticalUpdateIsIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("p"), Price: num(10)},
	})
	require.NoError(t, err)

	in := catalog.ProductUpdateInput{Name: str("renamed"), Price: num(25)}

	first, err := svc.UpdateProduct(ctx, created[0].ID, in)
	require.NoError(t, err)
	second, err := svc.UpdateProduct(ctx, created[0].ID, in)
	require.NoError(t, err)

	// Re-applying the same field values succeeds and changes nothing.
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.Price, second.Price)
	assert.Equal(t, first.Sort, second.Sort)
	assert.Equal(t, first.StoreID, second.StoreID)

	persisted, err := svc.GetProduct(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", persisted.Name)
	assert.Equal(t, uint(25), persisted.Price)
}

func TestUpdateProduct_NoFields(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("p")},
	})
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, created[0].ID, catalog.ProductUpdateInput{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	stores := seedStores(t, svc, "a")

	created, err := svc.CreateProducts(ctx, []catalog.ProductBatchItem{
		{StoreID: stores[0], Name: str("p")},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created[0].ID))
	_, err = svc.GetProduct(ctx, created[0].ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.DeleteProduct(ctx, created[0].ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
