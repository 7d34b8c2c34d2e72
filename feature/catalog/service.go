package catalog

import (
	"strings"

	"catalog-service/core/apperr"
	"catalog-service/core/server"
	"catalog-service/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service orchestrates store and product operations. Batch writes run inside
// a single transaction so an aborted batch leaves no partial rows behind.
type Service struct {
	db       *gorm.DB
	stores   *StoreRepository
	products *ProductRepository
	client   storage.Client
	bucket   string
	pages    server.Config
	logger   *zap.Logger
}

// NewService creates a new catalog service. The storage client may be nil;
// image operations then answer with a validation failure.
func NewService(db *gorm.DB, client storage.Client, bucket string, pages server.Config, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		stores:   NewStoreRepository(db),
		products: NewProductRepository(db),
		client:   client,
		bucket:   bucket,
		pages:    pages,
		logger:   logger,
	}
}

// StoreBatchItem is one row of a store batch request. A nil Sort lets the
// allocator assign the next slot; an explicit value pins it.
type StoreBatchItem struct {
	ID       uint               `json:"id"`
	Name     *string            `json:"name"`
	Sort     *uint              `json:"sort"`
	Products []ProductBatchItem `json:"products"`
}

// ProductBatchItem is one row of a product batch request.
type ProductBatchItem struct {
	ID      uint    `json:"id"`
	StoreID uint    `json:"store_id"`
	Name    *string `json:"name"`
	Price   *uint   `json:"price"`
	Sort    *uint   `json:"sort"`
}

// ProductUpdateInput is the partial field set of a single-product update.
type ProductUpdateInput struct {
	StoreID *uint   `json:"store_id"`
	Name    *string `json:"name"`
	Price   *uint   `json:"price"`
	Sort    *uint   `json:"sort"`
}

func validateName(name *string) error {
	if name == nil || strings.TrimSpace(*name) == "" {
		return apperr.Validation("name is required")
	}
	if len(*name) > 255 {
		return apperr.Validation("name must be at most 255 characters")
	}
	return nil
}
