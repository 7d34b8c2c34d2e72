package catalog

import (
	"context"

	"catalog-service/core/apperr"
	"catalog-service/core/reconcile"
	"catalog-service/feature/catalog/models"
)

// storeInsert is the full field set of a store insert patch.
type storeInsert struct {
	Name string
}

// productInsert is the full field set of a product insert patch. Update
// patches carry a map of column names instead.
type productInsert struct {
	Name  string
	Price uint
}

// storeCollection adapts the store repository to the reconcile engine. All
// stores live in the single global scope.
type storeCollection struct {
	repo *StoreRepository
}

var _ reconcile.Collection = (*storeCollection)(nil)

func (c *storeCollection) Owner(ctx context.Context, id uint) (uint, error) {
	store, err := c.repo.FindActive(ctx, id)
	if err != nil {
		return 0, err
	}
	if store == nil {
		return 0, apperr.NotFound("store %d not found", id)
	}
	return reconcile.GlobalScope, nil
}

func (c *storeCollection) ActiveIDs(ctx context.Context, _ uint) ([]uint, error) {
	return c.repo.ActiveIDs(ctx)
}

func (c *storeCollection) MaxSort(ctx context.Context, _ uint) (uint, error) {
	return c.repo.MaxSort(ctx)
}

func (c *storeCollection) Insert(ctx context.Context, _ uint, sort uint, fields any) (any, error) {
	in, ok := fields.(storeInsert)
	if !ok {
		return nil, apperr.Persistence(nil, "unexpected store insert payload %T", fields)
	}
	store := &models.Store{Name: in.Name, Sort: sort}
	if err := c.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (c *storeCollection) Update(ctx context.Context, id uint, fields any) (any, error) {
	cols, ok := fields.(map[string]any)
	if !ok {
		return nil, apperr.Persistence(nil, "unexpected store update payload %T", fields)
	}
	return c.repo.Updates(ctx, id, cols)
}

func (c *storeCollection) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return c.repo.SoftDelete(ctx, id)
}

// productCollection adapts the product repository to the reconcile engine.
// The scope id is the owning store id.
type productCollection struct {
	repo *ProductRepository
}

var _ reconcile.Collection = (*productCollection)(nil)

func (c *productCollection) Owner(ctx context.Context, id uint) (uint, error) {
	product, err := c.repo.FindActive(ctx, id)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, apperr.NotFound("product %d not found", id)
	}
	return product.StoreID, nil
}

func (c *productCollection) ActiveIDs(ctx context.Context, storeID uint) ([]uint, error) {
	return c.repo.ActiveIDs(ctx, storeID)
}

func (c *productCollection) MaxSort(ctx context.Context, storeID uint) (uint, error) {
	return c.repo.MaxSort(ctx, storeID)
}

func (c *productCollection) Insert(ctx context.Context, storeID uint, sort uint, fields any) (any, error) {
	in, ok := fields.(productInsert)
	if !ok {
		return nil, apperr.Persistence(nil, "unexpected product insert payload %T", fields)
	}
	product := &models.Product{StoreID: storeID, Name: in.Name, Price: in.Price, Sort: sort}
	if err := c.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (c *productCollection) Update(ctx context.Context, id uint, fields any) (any, error) {
	cols, ok := fields.(map[string]any)
	if !ok {
		return nil, apperr.Persistence(nil, "unexpected product update payload %T", fields)
	}
	return c.repo.Updates(ctx, id, cols)
}

func (c *productCollection) SoftDelete(ctx context.Context, id uint) (bool, error) {
	return c.repo.SoftDelete(ctx, id)
}
