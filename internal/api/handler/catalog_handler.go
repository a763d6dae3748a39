package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// CatalogHandler handles HTTP requests for catalog items.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// List handles GET /v1/items.
//
// @Summary      List catalog items
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Item
// @Failure      500  {object}  errorResponse
// @Router       /v1/items [get]
func (h *CatalogHandler) List(c echo.Context) error {
	items, err := h.service.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/items/:id.
//
// @Summary      Get a catalog item
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  domain.Item
// @Failure      404  {object}  errorResponse
// @Router       /v1/items/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	item, err := h.service.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create handles POST /v1/admin/items (admin only).
func (h *CatalogHandler) Create(c echo.Context) error {
	var req upsertItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	item, err := h.service.CreateItem(c.Request().Context(), ports.UpsertItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Type:            req.Type,
		Image:           req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// Update handles PUT /v1/admin/items/:id (admin only).
func (h *CatalogHandler) Update(c echo.Context) error {
	var req upsertItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	item, err := h.service.UpdateItem(c.Request().Context(), c.Param("id"), ports.UpsertItemInput{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Type:            req.Type,
		Image:           req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /v1/admin/items/:id (admin only).
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
