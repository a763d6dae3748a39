package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/api/metrics"
	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// OrderHandler handles checkout and order management.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Checkout handles POST /v1/checkout. On success the cart is emptied; on
// failure it is left untouched so the user can retry.
//
// @Summary      Place an order from the current cart
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      checkoutRequest  true   "Checkout details"
// @Success      201              {object}  checkoutResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /v1/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID:          userID,
		DeliveryAddress: req.DeliveryAddress,
		PhoneNumber:     req.PhoneNumber,
		ProofOfPayment:  req.ProofOfPayment,
		IdempotencyKey:  c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		if err == domain.ErrEmptyCart {
			metrics.CheckoutFailuresTotal.WithLabelValues("empty_cart").Inc()
		} else {
			metrics.CheckoutFailuresTotal.WithLabelValues("store_error").Inc()
		}
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	} else {
		metrics.OrdersCreatedTotal.Inc()
	}

	return c.JSON(status, checkoutResponse{
		OrderNumber: result.OrderNumber,
		OrderID:     result.OrderID,
		Total:       result.Total,
		Status:      result.Status,
		CreatedAt:   result.CreatedAt,
	})
}

// List handles GET /v1/orders — the caller's own orders, newest first.
//
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /v1/orders/:id, scoped to the caller's own orders.
func (h *OrderHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// AdminList handles GET /v1/admin/orders — all orders.
func (h *OrderHandler) AdminList(c echo.Context) error {
	orders, err := h.service.ListOrders(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status. Approving an order
// triggers policy issuance.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
