package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/api/metrics"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// CartHandler handles HTTP requests for the caller's shopping cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /v1/cart.
//
// @Summary      Get the current cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.service.GetCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// AddItem handles POST /v1/cart/items. Adding an item already in the cart
// increments its quantity.
//
// @Summary      Add an item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCartItemRequest  true  "Item to add"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	summary, err := h.service.AddItem(c.Request().Context(), userID, req.ItemID)
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// UpdateQuantity handles PATCH /v1/cart/items/:item_id. A quantity of zero or
// less removes the entry.
//
// @Summary      Update an entry's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item_id  path      string                 true  "Catalog item id"
// @Param        body     body      updateQuantityRequest  true  "New quantity"
// @Success      200      {object}  cartResponse
// @Failure      400      {object}  errorResponse
// @Router       /v1/cart/items/{item_id} [patch]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	quantity, ok := quantityFromQuery(c)
	if !ok {
		var req updateQuantityRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		}
		quantity = req.Quantity
	}

	summary, err := h.service.UpdateQuantity(c.Request().Context(), userID, c.Param("item_id"), quantity)
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// RemoveItem handles DELETE /v1/cart/items/:item_id.
//
// @Summary      Remove an entry from the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        item_id  path      string  true  "Catalog item id"
// @Success      200      {object}  cartResponse
// @Failure      401      {object}  errorResponse
// @Router       /v1/cart/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.service.RemoveItem(c.Request().Context(), userID, c.Param("item_id"))
	if err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, toCartResponse(summary))
}

// Clear handles DELETE /v1/cart.
//
// @Summary      Empty the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.ClearCart(c.Request().Context(), userID); err != nil {
		return err
	}

	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	return c.NoContent(http.StatusNoContent)
}

func toCartResponse(summary *ports.CartSummary) cartResponse {
	return cartResponse{
		Cart:       summary.Cart,
		TotalItems: summary.TotalItems,
		TotalPrice: summary.TotalPrice,
	}
}

// quantityFromQuery is kept for clients that send the quantity as a query
// parameter instead of a JSON body.
func quantityFromQuery(c echo.Context) (int, bool) {
	raw := c.QueryParam("quantity")
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
