package catalog

import (
	"context"
	"errors"

	"catalog-service/core/apperr"
	"catalog-service/feature/catalog/models"

	"gorm.io/gorm"
)

// StoreRepository provides database access for stores.
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *StoreRepository) WithTx(tx *gorm.DB) *StoreRepository {
	return &StoreRepository{db: tx}
}

// ListActive returns all active stores ordered by sort.
func (r *StoreRepository) ListActive(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Order("sort ASC, id ASC").
		Find(&stores).Error
	if err != nil {
		return nil, apperr.Persistence(err, "listing stores")
	}
	return stores, nil
}

// FindActive returns the active store with the given id, or nil when no such
// row exists.
func (r *StoreRepository) FindActive(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Persistence(err, "finding store %d", id)
	}
	return &store, nil
}

// ActiveIDs returns the ids of all active stores.
func (r *StoreRepository) ActiveIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Store{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperr.Persistence(err, "listing store ids")
	}
	return ids, nil
}

// MaxSort returns the highest sort among active stores, zero when none exist.
func (r *StoreRepository) MaxSort(ctx context.Context) (uint, error) {
	var max uint
	err := r.db.WithContext(ctx).Model(&models.Store{}).
		Select("COALESCE(MAX(sort), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, apperr.Persistence(err, "reading store max sort")
	}
	return max, nil
}

// Create inserts a new store row.
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Create(store).Error; err != nil {
		return apperr.Persistence(err, "creating store")
	}
	return nil
}

// Updates applies the partial field set to an active store and returns the
// re-read row. A write that matches no row is a Persistence error.
func (r *StoreRepository) Updates(ctx context.Context, id uint, fields map[string]any) (*models.Store, error) {
	res := r.db.WithContext(ctx).Model(&models.Store{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperr.Persistence(res.Error, "updating store %d", id)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.Persistence(nil, "update of store %d affected no rows", id)
	}
	return r.FindActive(ctx, id)
}

// SoftDelete marks the store deleted. False when no active row was affected.
func (r *StoreRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Store{}, id)
	if res.Error != nil {
		return false, apperr.Persistence(res.Error, "deleting store %d", id)
	}
	return res.RowsAffected > 0, nil
}
