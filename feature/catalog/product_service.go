package catalog

import (
	"context"

	"catalog-service/core/apperr"
	"catalog-service/core/reconcile"
	"catalog-service/feature/catalog/models"

	"gorm.io/gorm"
)

// ListProducts returns one page of the cross-store product listing. Rows are
// ordered by store sort first, then product sort, then product id.
func (s *Service) ListProducts(ctx context.Context, page, perPage int) (*models.ProductPage, error) {
	if page <= 0 {
		page = 1
	}
	perPage = s.pages.ClampPageSize(perPage)

	products, total, err := s.products.ListPage(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	items := make([]models.ProductListing, 0, len(products))
	for _, p := range products {
		listing := models.ProductListing{Product: p}
		if p.Store != nil {
			listing.Store = *p.Store
		}
		listing.Product.Store = nil
		items = append(items, listing)
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &models.ProductPage{
		Items: items,
		Pagination: models.Pagination{
			CurrentPage: page,
			PerPage:     perPage,
			Total:       total,
			LastPage:    lastPage,
		},
	}, nil
}

// ListStoreProducts returns the active products of one store ordered by sort.
func (s *Service) ListStoreProducts(ctx context.Context, storeID uint) ([]models.Product, error) {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	return s.products.ListActiveByStore(ctx, storeID)
}

// GetProduct returns one active product together with its store.
func (s *Service) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperr.NotFound("product %d not found", id)
	}
	return product, nil
}

// CreateProducts creates a batch of products, each declaring its owning
// store. Items keep their request order in the result even when they target
// different stores.
func (s *Service) CreateProducts(ctx context.Context, items []ProductBatchItem) ([]models.Product, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("at least one product is required")
	}
	for _, item := range items {
		if item.ID != 0 {
			return nil, apperr.Validation("product creation must not carry an id")
		}
		if item.StoreID == 0 {
			return nil, apperr.Validation("every product must declare a store_id")
		}
		if err := validateName(item.Name); err != nil {
			return nil, err
		}
	}
	return s.runProductBatch(ctx, items, reconcile.Options{})
}

// UpdateProductsFlat applies a mixed batch of product inserts and updates.
// Every item must declare its store_id so each row is reconciled against a
// known scope; the batch never deletes omitted rows. An update naming a row
// of a different store is rejected, not reassigned.
func (s *Service) UpdateProductsFlat(ctx context.Context, items []ProductBatchItem) ([]models.Product, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("at least one product is required")
	}
	for _, item := range items {
		if item.StoreID == 0 {
			return nil, apperr.Validation("every product must declare a store_id")
		}
		if err := validateBatchItemFields(item); err != nil {
			return nil, err
		}
	}
	return s.runProductBatch(ctx, items, reconcile.Options{})
}

// ReconcileStoreProducts replaces the product set of one store: inserts and
// updates from the batch are applied, and when the batch carried at least one
// update, active products the batch did not mention are soft-deleted.
func (s *Service) ReconcileStoreProducts(ctx context.Context, storeID uint, items []ProductBatchItem) ([]models.Product, error) {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return nil, err
	}
	for i := range items {
		item := &items[i]
		if item.StoreID != 0 && item.StoreID != storeID {
			return nil, apperr.Validation("product %d declares store %d but is being reconciled under store %d",
				item.ID, item.StoreID, storeID)
		}
		item.StoreID = storeID
		if err := validateBatchItemFields(*item); err != nil {
			return nil, err
		}
	}

	var results []models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		engine := reconcile.New(&productCollection{repo: s.products.WithTx(tx)})
		patches := make([]reconcile.Patch, 0, len(items))
		for _, item := range items {
			patches = append(patches, productPatchFromItem(item))
		}
		rows, err := engine.Reconcile(ctx, storeID, patches, reconcile.Options{DeleteOmitted: true})
		if err != nil {
			return err
		}
		results = make([]models.Product, 0, len(rows))
		for _, row := range rows {
			results = append(results, *row.(*models.Product))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateProduct applies a partial update to one product. This is the only
// path that may move a product to another store; the target store must be
// active.
func (s *Service) UpdateProduct(ctx context.Context, id uint, in ProductUpdateInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		if err := validateName(in.Name); err != nil {
			return nil, err
		}
		fields["name"] = *in.Name
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Sort != nil {
		fields["sort"] = *in.Sort
	}
	if in.StoreID != nil && *in.StoreID != product.StoreID {
		if _, err := s.GetStore(ctx, *in.StoreID); err != nil {
			return nil, err
		}
		fields["store_id"] = *in.StoreID
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("no fields to update")
	}

	return s.products.Updates(ctx, id, fields)
}

// DeleteProduct soft-deletes one product.
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	ok, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Persistence(nil, "delete of product %d affected no rows", id)
	}
	return nil
}

// runProductBatch groups items by store, runs the engine per store inside a
// single transaction, and reassembles results in request order.
func (s *Service) runProductBatch(ctx context.Context, items []ProductBatchItem, opts reconcile.Options) ([]models.Product, error) {
	type group struct {
		storeID uint
		patches []reconcile.Patch
		indexes []int
	}

	byStore := make(map[uint]*group)
	var groups []*group
	for i, item := range items {
		g, ok := byStore[item.StoreID]
		if !ok {
			g = &group{storeID: item.StoreID}
			byStore[item.StoreID] = g
			groups = append(groups, g)
		}
		g.patches = append(g.patches, productPatchFromItem(item))
		g.indexes = append(g.indexes, i)
	}

	for _, g := range groups {
		if _, err := s.GetStore(ctx, g.storeID); err != nil {
			return nil, err
		}
	}

	results := make([]models.Product, len(items))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		coll := &productCollection{repo: s.products.WithTx(tx)}
		for _, g := range groups {
			engine := reconcile.New(coll)
			rows, err := engine.Reconcile(ctx, g.storeID, g.patches, opts)
			if err != nil {
				return err
			}
			for i, row := range rows {
				results[g.indexes[i]] = *row.(*models.Product)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// validateBatchItemFields checks the per-item shape of a mixed batch: inserts
// need a name, updates need at least one field.
func validateBatchItemFields(item ProductBatchItem) error {
	if item.ID == 0 {
		return validateName(item.Name)
	}
	if item.Name != nil {
		if err := validateName(item.Name); err != nil {
			return err
		}
	}
	if item.Name == nil && item.Price == nil && item.Sort == nil {
		return apperr.Validation("product %d carries no fields to update", item.ID)
	}
	return nil
}

// productPatchFromItem converts a validated batch item into an engine patch.
func productPatchFromItem(item ProductBatchItem) reconcile.Patch {
	if item.ID == 0 {
		in := productInsert{Name: *item.Name}
		if item.Price != nil {
			in.Price = *item.Price
		}
		patch := reconcile.Patch{Fields: in}
		if item.Sort != nil {
			patch.Sort = *item.Sort
		}
		return patch
	}

	fields := map[string]any{}
	if item.Name != nil {
		fields["name"] = *item.Name
	}
	if item.Price != nil {
		fields["price"] = *item.Price
	}
	if item.Sort != nil {
		fields["sort"] = *item.Sort
	}
	return reconcile.Patch{ID: item.ID, Fields: fields}
}
