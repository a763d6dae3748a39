package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// PolicyTypeHandler handles policy type listing and admin management.
type PolicyTypeHandler struct {
	service ports.PolicyTypeService
}

func NewPolicyTypeHandler(service ports.PolicyTypeService) *PolicyTypeHandler {
	return &PolicyTypeHandler{service: service}
}

// List handles GET /v1/policy-types. Non-admin callers see active types only.
func (h *PolicyTypeHandler) List(c echo.Context) error {
	types, err := h.service.ListPolicyTypes(c.Request().Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

// AdminList handles GET /v1/admin/policy-types, including inactive types.
func (h *PolicyTypeHandler) AdminList(c echo.Context) error {
	types, err := h.service.ListPolicyTypes(c.Request().Context(), false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

// Create handles POST /v1/admin/policy-types.
func (h *PolicyTypeHandler) Create(c echo.Context) error {
	var req upsertPolicyTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	pt, err := h.service.CreatePolicyType(c.Request().Context(), domain.PolicyType{
		Name:        req.Name,
		Description: req.Description,
		BasePremium: req.BasePremium,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, pt)
}

// Update handles PUT /v1/admin/policy-types/:id.
func (h *PolicyTypeHandler) Update(c echo.Context) error {
	var req upsertPolicyTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	pt, err := h.service.UpdatePolicyType(c.Request().Context(), domain.PolicyType{
		ID:          c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		BasePremium: req.BasePremium,
		Active:      req.Active,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pt)
}

// Delete handles DELETE /v1/admin/policy-types/:id.
func (h *PolicyTypeHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePolicyType(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
