package catalog

import (
	"catalog-service/core/apperr"
	"catalog-service/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stores and products.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes behind the guard.
func (h *Handler) RegisterRoutes(app fiber.Router, guard fiber.Handler) {
	stores := app.Group("/stores", guard)
	stores.Get("/", h.HandleListStores)
	stores.Post("/", h.HandleCreateStores)
	stores.Put("/", h.HandleUpdateStores)
	stores.Get("/:id", h.HandleGetStore)
	stores.Delete("/:id", h.HandleDeleteStore)
	stores.Put("/:id/products", h.HandleReconcileStoreProducts)

	products := app.Group("/products", guard)
	products.Get("/", h.HandleListProducts)
	products.Post("/", h.HandleCreateProducts)
	products.Put("/", h.HandleUpdateProductsFlat)
	products.Get("/by-store/:store_id", h.HandleListStoreProducts)
	products.Get("/:id", h.HandleGetProduct)
	products.Patch("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)
	products.Put("/:id/image", h.HandleAttachImage)
	products.Get("/:id/image", h.HandleGetImage)
	products.Delete("/:id/image", h.HandleRemoveImage)
}

// idParam reads a positive integer route parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid %s", name)
	}
	return uint(id), nil
}

func (h *Handler) logError(c *fiber.Ctx, msg string, err error) {
	l := logger.WithRayID(h.service.logger, c)
	if apperr.IsClient(err) {
		l.Info(msg, zap.Error(err))
		return
	}
	l.Error(msg, zap.Error(err))
}
