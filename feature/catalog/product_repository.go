package catalog

import (
	"context"
	"errors"

	"catalog-service/core/apperr"
	"catalog-service/feature/catalog/models"

	"gorm.io/gorm"
)

// ProductRepository provides database access for products.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// ListActiveByStore returns the active products of one store ordered by sort.
func (r *ProductRepository) ListActiveByStore(ctx context.Context, storeID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("sort ASC, id ASC").
		Find(&products).Error
	if err != nil {
		return nil, apperr.Persistence(err, "listing products of store %d", storeID)
	}
	return products, nil
}

// ListPage returns one page of the cross-store listing: active products whose
// store is also active, ordered by store sort, then product sort, then id.
func (r *ProductRepository) ListPage(ctx context.Context, page, perPage int) ([]models.Product, int64, error) {
	// Session makes the chain reusable for both the count and the page read.
	base := r.db.WithContext(ctx).Model(&models.Product{}).
		Joins("JOIN stores ON stores.id = products.store_id AND stores.deleted_at IS NULL").
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, apperr.Persistence(err, "counting products")
	}

	var products []models.Product
	err := base.
		Preload("Store").
		Order("stores.sort ASC, products.sort ASC, products.id ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, apperr.Persistence(err, "listing products")
	}
	return products, total, nil
}

// FindActive returns the active product with the given id together with its
// store, or nil when no such row exists.
func (r *ProductRepository) FindActive(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Store").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Persistence(err, "finding product %d", id)
	}
	return &product, nil
}

// ActiveIDs returns the ids of all active products of one store.
func (r *ProductRepository) ActiveIDs(ctx context.Context, storeID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("store_id = ?", storeID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Persistence(err, "listing product ids of store %d", storeID)
	}
	return ids, nil
}

// MaxSort returns the highest sort among the active products of one store,
// zero when the store has none.
func (r *ProductRepository) MaxSort(ctx context.Context, storeID uint) (uint, error) {
	var max uint
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(MAX(sort), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, apperr.Persistence(err, "reading product max sort of store %d", storeID)
	}
	return max, nil
}

// Create inserts a new product row.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperr.Persistence(err, "creating product")
	}
	return nil
}

// Updates applies the partial field set to an active product and returns the
// re-read row. A write that matches no row is a Persistence error.
func (r *ProductRepository) Updates(ctx context.Context, id uint, fields map[string]any) (*models.Product, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperr.Persistence(res.Error, "updating product %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Persistence(nil, "update of product %d affected no rows", id)
	}
	return r.FindActive(ctx, id)
}

// SoftDelete marks the product deleted. False when no active row was
// affected.
func (r *ProductRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return false, apperr.Persistence(res.Error, "deleting product %d", id)
	}
	return res.RowsAffected > 0, nil
}

// SoftDeleteByStore marks all active products of one store deleted and
// returns how many rows were affected.
func (r *ProductRepository) SoftDeleteByStore(ctx context.Context, storeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Delete(&models.Product{})
	if res.Error != nil {
		return 0, apperr.Persistence(res.Error, "deleting products of store %d", storeID)
	}
	return res.RowsAffected, nil
}
