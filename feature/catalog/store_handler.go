package catalog

import (
	"catalog-service/core/apperr"
	"catalog-service/core/response"

	"github.com/gofiber/fiber/v2"
)

// storeBatchRequest is the body of the store batch endpoints.
type storeBatchRequest struct {
	Stores []StoreBatchItem `json:"stores"`
}

// productBatchRequest is the body of the product batch endpoints.
type productBatchRequest struct {
	Products []ProductBatchItem `json:"products"`
}

// HandleListStores lists active stores.
// @Summary List stores
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope "Stores ordered by sort"
// @Router /api/stores [get]
func (h *Handler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.service.ListStores(c.Context())
	if err != nil {
		h.logError(c, "listing stores failed", err)
		return response.FromError(c, err, "listing stores failed")
	}
	return response.Success(c, stores, "ok")
}

// HandleGetStore returns one store.
// @Summary Get store
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store id"
// @Success 200 {object} response.Envelope "Store"
// @Failure 404 {object} response.Envelope "Store not found"
// @Router /api/stores/{id} [get]
func (h *Handler) HandleGetStore(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	store, err := h.service.GetStore(c.Context(), id)
	if err != nil {
		h.logError(c, "store lookup failed", err)
		return response.FromError(c, err, "store lookup failed")
	}
	return response.Success(c, store, "ok")
}

// HandleCreateStores creates a batch of stores with optional nested
// products.
// @Summary Create stores
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body catalog.storeBatchRequest true "Stores to create"
// @Success 200 {object} response.Envelope "Created stores in request order"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/stores [post]
func (h *Handler) HandleCreateStores(c *fiber.Ctx) error {
	var req storeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}
	stores, err := h.service.CreateStores(c.Context(), req.Stores)
	if err != nil {
		h.logError(c, "store batch create failed", err)
		return response.FromError(c, err, "store batch create failed")
	}
	return response.Success(c, stores, "stores created")
}

// HandleUpdateStores applies a batch of partial store updates.
// @Summary Update stores
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body catalog.storeBatchRequest true "Stores to update, each with id"
// @Success 200 {object} response.Envelope "Updated stores in request order"
// @Failure 404 {object} response.Envelope "A named store does not exist"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/stores [put]
func (h *Handler) HandleUpdateStores(c *fiber.Ctx) error {
	var req storeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}
	stores, err := h.service.UpdateStores(c.Context(), req.Stores)
	if err != nil {
		h.logError(c, "store batch update failed", err)
		return response.FromError(c, err, "store batch update failed")
	}
	return response.Success(c, stores, "stores updated")
}

// HandleDeleteStore soft-deletes a store and its products.
// @Summary Delete store
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Store not found"
// @Router /api/stores/{id} [delete]
func (h *Handler) HandleDeleteStore(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	if err := h.service.DeleteStore(c.Context(), id); err != nil {
		h.logError(c, "store delete failed", err)
		return response.FromError(c, err, "store delete failed")
	}
	return response.Success(c, nil, "store deleted")
}

// HandleReconcileStoreProducts replaces the product set of one store.
// @Summary Reconcile store products
// @Description Apply inserts and updates; when the batch carries at least one update, active products it does not mention are soft-deleted.
// @Tags stores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store id"
// @Param body body catalog.productBatchRequest true "Product batch"
// @Success 200 {object} response.Envelope "Affected products in request order"
// @Failure 404 {object} response.Envelope "Store or product not found"
// @Failure 409 {object} response.Envelope "Product belongs to another store"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/stores/{id}/products [put]
func (h *Handler) HandleReconcileStoreProducts(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	var req productBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}
	products, err := h.service.ReconcileStoreProducts(c.Context(), id, req.Products)
	if err != nil {
		h.logError(c, "store product reconcile failed", err)
		return response.FromError(c, err, "store product reconcile failed")
	}
	return response.Success(c, products, "products reconciled")
}
