package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// PaymentHandler handles payment history reads and admin-recorded payments.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// List handles GET /v1/payments — the caller's own payment history.
//
// @Summary      List own payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Payment
// @Failure      401  {object}  errorResponse
// @Router       /v1/payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	payments, err := h.service.ListPayments(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// AdminList handles GET /v1/admin/payments — all payments.
func (h *PaymentHandler) AdminList(c echo.Context) error {
	payments, err := h.service.ListPayments(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Record handles POST /v1/admin/payments.
func (h *PaymentHandler) Record(c echo.Context) error {
	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	payment, err := h.service.RecordPayment(c.Request().Context(), ports.RecordPaymentInput{
		UserID:        req.UserID,
		PolicyID:      req.PolicyID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		PlanType:      req.PlanType,
		Status:        domain.PaymentStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, payment)
}
