package catalog

import (
	"context"

	"catalog-service/core/apperr"
	"catalog-service/core/reconcile"
	"catalog-service/feature/catalog/models"

	"gorm.io/gorm"
)

// ListStores returns all active stores ordered by sort.
func (s *Service) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.stores.ListActive(ctx)
}

// GetStore returns one active store.
func (s *Service) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	store, err := s.stores.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("store %d not found", id)
	}
	return store, nil
}

// CreateStores creates a batch of stores, each optionally seeded with nested
// products. Store sorts come from the global allocator unless an item pins an
// explicit value; pinned values raise the allocator so later items in the
// same batch do not collide. The whole batch is one transaction.
func (s *Service) CreateStores(ctx context.Context, items []StoreBatchItem) ([]models.Store, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("at least one store is required")
	}
	for _, item := range items {
		if item.ID != 0 {
			return nil, apperr.Validation("store creation must not carry an id")
		}
		if err := validateName(item.Name); err != nil {
			return nil, err
		}
		for _, p := range item.Products {
			if p.ID != 0 {
				return nil, apperr.Validation("nested product creation must not carry an id")
			}
			if err := validateName(p.Name); err != nil {
				return nil, err
			}
		}
	}

	var created []models.Store
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		storeEngine := reconcile.New(&storeCollection{repo: s.stores.WithTx(tx)})
		productColl := &productCollection{repo: s.products.WithTx(tx)}

		patches := make([]reconcile.Patch, 0, len(items))
		for _, item := range items {
			patch := reconcile.Patch{Fields: storeInsert{Name: *item.Name}}
			if item.Sort != nil {
				patch.Sort = *item.Sort
			}
			patches = append(patches, patch)
		}

		rows, err := storeEngine.Reconcile(ctx, reconcile.GlobalScope, patches, reconcile.Options{})
		if err != nil {
			return err
		}

		created = make([]models.Store, 0, len(rows))
		for i, row := range rows {
			store := row.(*models.Store)
			if len(items[i].Products) > 0 {
				productEngine := reconcile.New(productColl)
				productPatches := make([]reconcile.Patch, 0, len(items[i].Products))
				for _, p := range items[i].Products {
					productPatches = append(productPatches, productPatchFromItem(p))
				}
				productRows, err := productEngine.Reconcile(ctx, store.ID, productPatches, reconcile.Options{})
				if err != nil {
					return err
				}
				for _, pr := range productRows {
					store.Products = append(store.Products, *pr.(*models.Product))
				}
			}
			created = append(created, *store)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStores applies a batch of partial store updates. Omitted stores are
// left untouched; removal goes through DeleteStore.
func (s *Service) UpdateStores(ctx context.Context, items []StoreBatchItem) ([]models.Store, error) {
	if len(items) == 0 {
		return nil, apperr.Validation("at least one store is required")
	}

	patches := make([]reconcile.Patch, 0, len(items))
	for _, item := range items {
		if item.ID == 0 {
			return nil, apperr.Validation("store update requires an id")
		}
		fields := map[string]any{}
		if item.Name != nil {
			if err := validateName(item.Name); err != nil {
				return nil, err
			}
			fields["name"] = *item.Name
		}
		if item.Sort != nil {
			fields["sort"] = *item.Sort
		}
		if len(fields) == 0 {
			return nil, apperr.Validation("store %d carries no fields to update", item.ID)
		}
		patches = append(patches, reconcile.Patch{ID: item.ID, Fields: fields})
	}

	var updated []models.Store
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		engine := reconcile.New(&storeCollection{repo: s.stores.WithTx(tx)})
		rows, err := engine.Reconcile(ctx, reconcile.GlobalScope, patches, reconcile.Options{})
		if err != nil {
			return err
		}
		updated = make([]models.Store, 0, len(rows))
		for _, row := range rows {
			updated = append(updated, *row.(*models.Store))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteStore soft-deletes a store and cascades to its active products inside
// one transaction.
func (s *Service) DeleteStore(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stores := s.stores.WithTx(tx)
		store, err := stores.FindActive(ctx, id)
		if err != nil {
			return err
		}
		if store == nil {
			return apperr.NotFound("store %d not found", id)
		}

		if _, err := s.products.WithTx(tx).SoftDeleteByStore(ctx, id); err != nil {
			return err
		}
		ok, err := stores.SoftDelete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Persistence(nil, "delete of store %d affected no rows", id)
		}
		return nil
	})
}
