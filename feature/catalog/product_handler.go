package catalog

import (
	"bytes"

	"catalog-service/core/apperr"
	"catalog-service/core/response"

	"github.com/gofiber/fiber/v2"
)

// HandleListProducts lists products across stores, paginated.
// @Summary List products
// @Description Products of active stores ordered by store sort, then product sort. per_page is capped by configuration.
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} response.Envelope "Page of store/product pairs"
// @Router /api/products [get]
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 0)

	result, err := h.service.ListProducts(c.Context(), page, perPage)
	if err != nil {
		h.logError(c, "listing products failed", err)
		return response.FromError(c, err, "listing products failed")
	}
	return response.Success(c, result, "ok")
}

// HandleListStoreProducts lists the products of one store.
// @Summary List products of a store
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param store_id path int true "Store id"
// @Success 200 {object} response.Envelope "Products ordered by sort"
// @Failure 404 {object} response.Envelope "Store not found"
// @Router /api/products/by-store/{store_id} [get]
func (h *Handler) HandleListStoreProducts(c *fiber.Ctx) error {
	storeID, err := idParam(c, "store_id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	products, err := h.service.ListStoreProducts(c.Context(), storeID)
	if err != nil {
		h.logError(c, "listing store products failed", err)
		return response.FromError(c, err, "listing store products failed")
	}
	return response.Success(c, products, "ok")
}

// HandleGetProduct returns one product with its store.
// @Summary Get product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} response.Envelope "Product"
// @Failure 404 {object} response.Envelope "Product not found"
// @Router /api/products/{id} [get]
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	product, err := h.service.GetProduct(c.Context(), id)
	if err != nil {
		h.logError(c, "product lookup failed", err)
		return response.FromError(c, err, "product lookup failed")
	}
	return response.Success(c, product, "ok")
}

// HandleCreateProducts creates a batch of products.
// @Summary Create products
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body catalog.productBatchRequest true "Products to create, each with store_id"
// @Success 200 {object} response.Envelope "Created products in request order"
// @Failure 404 {object} response.Envelope "A declared store does not exist"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/products [post]
func (h *Handler) HandleCreateProducts(c *fiber.Ctx) error {
	var req productBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}
	products, err := h.service.CreateProducts(c.Context(), req.Products)
	if err != nil {
		h.logError(c, "product batch create failed", err)
		return response.FromError(c, err, "product batch create failed")
	}
	return response.Success(c, products, "products created")
}

// HandleUpdateProductsFlat applies a mixed batch of product inserts and
// updates across stores.
// @Summary Update products
// @Description Every item must declare its store_id. Rows of other stores are rejected, never reassigned. Omitted rows are kept.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body catalog.productBatchRequest true "Product batch"
// @Success 200 {object} response.Envelope "Affected products in request order"
// @Failure 404 {object} response.Envelope "A named product or store does not exist"
// @Failure 409 {object} response.Envelope "Product belongs to another store"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/products [put]
func (h *Handler) HandleUpdateProductsFlat(c *fiber.Ctx) error {
	var req productBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}
	products, err := h.service.UpdateProductsFlat(c.Context(), req.Products)
	if err != nil {
		h.logError(c, "product batch update failed", err)
		return response.FromError(c, err, "product batch update failed")
	}
	return response.Success(c, products, "products updated")
}

// HandleUpdateProduct applies a partial update to one product.
// @Summary Update one product
// @Description The only endpoint that may move a product to another store.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Param body body catalog.ProductUpdateInput true "Fields to update"
// @Success 200 {object} response.Envelope "Updated product"
// @Failure 404 {object} response.Envelope "Product or target store not found"
// @Failure 422 {object} response.Envelope "Validation failure"
// @Router /api/products/{id} [patch]
func (h *Handler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	var in ProductUpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.FromError(c, apperr.Validation("malformed request body"), "")
	}
	product, err := h.service.UpdateProduct(c.Context(), id, in)
	if err != nil {
		h.logError(c, "product update failed", err)
		return response.FromError(c, err, "product update failed")
	}
	return response.Success(c, product, "product updated")
}

// HandleDeleteProduct soft-deletes one product.
// @Summary Delete product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Product not found"
// @Router /api/products/{id} [delete]
func (h *Handler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		h.logError(c, "product delete failed", err)
		return response.FromError(c, err, "product delete failed")
	}
	return response.Success(c, nil, "product deleted")
}

// HandleAttachImage uploads a product image.
// @Summary Upload product image
// @Tags products
// @Accept octet-stream
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Product not found"
// @Failure 422 {object} response.Envelope "Empty body or storage unavailable"
// @Router /api/products/{id}/image [put]
func (h *Handler) HandleAttachImage(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}

	body := c.Body()
	contentType := c.Get(fiber.HeaderContentType)
	err = h.service.AttachImage(c.Context(), id, bytes.NewReader(body), int64(len(body)), contentType)
	if err != nil {
		h.logError(c, "image upload failed", err)
		return response.FromError(c, err, "image upload failed")
	}
	return response.Success(c, nil, "image uploaded")
}

// HandleGetImage streams a product image.
// @Summary Download product image
// @Tags products
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {file} binary "Image bytes"
// @Failure 404 {object} response.Envelope "Product or image not found"
// @Router /api/products/{id}/image [get]
func (h *Handler) HandleGetImage(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	image, err := h.service.GetImage(c.Context(), id)
	if err != nil {
		h.logError(c, "image download failed", err)
		return response.FromError(c, err, "image download failed")
	}
	if image.ContentType != "" {
		c.Set(fiber.HeaderContentType, image.ContentType)
	}
	return c.SendStream(image.Body, int(image.Size))
}

// HandleRemoveImage deletes a product image.
// @Summary Remove product image
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope "Product or image not found"
// @Router /api/products/{id}/image [delete]
func (h *Handler) HandleRemoveImage(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.FromError(c, err, "")
	}
	if err := h.service.RemoveImage(c.Context(), id); err != nil {
		h.logError(c, "image remove failed", err)
		return response.FromError(c, err, "image remove failed")
	}
	return response.Success(c, nil, "image removed")
}
