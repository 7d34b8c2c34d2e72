package catalog

import (
	"catalog-service/core/server"
	"catalog-service/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	guard   fiber.Handler
}

// NewFeature creates the catalog feature. The storage client may be nil when
// no object store is configured; image endpoints then reject requests.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, pages server.Config, guard fiber.Handler, logger *zap.Logger) *Feature {
	svc := NewService(db, client, bucket, pages, logger)
	return &Feature{handler: NewHandler(svc), guard: guard}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app, f.guard)
	return nil
}
