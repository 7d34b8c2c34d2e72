package auth

import (
	"catalog-service/core/token"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	guard   fiber.Handler
}

// NewFeature creates the auth feature.
func NewFeature(db *gorm.DB, tokens *token.Service, guard fiber.Handler, logger *zap.Logger) *Feature {
	repo := NewRepository(db)
	svc := NewService(repo, tokens, logger)
	return &Feature{handler: NewHandler(svc), guard: guard}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "auth"
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
