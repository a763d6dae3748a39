package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// PolicyHandler handles policy requests and admin policy management.
type PolicyHandler struct {
	service ports.PolicyService
}

func NewPolicyHandler(service ports.PolicyService) *PolicyHandler {
	return &PolicyHandler{service: service}
}

// List handles GET /v1/policies — the caller's own policies, newest first,
// each carrying a renewal_due flag.
//
// @Summary      List own policies
// @Tags         policies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.PolicyView
// @Failure      401  {object}  errorResponse
// @Router       /v1/policies [get]
func (h *PolicyHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	policies, err := h.service.ListPolicies(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policies)
}

// Get handles GET /v1/policies/:id, scoped to the caller's own policies.
func (h *PolicyHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	policy, err := h.service.GetPolicy(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policy)
}

// Request handles POST /v1/policies — a customer policy request.
//
// @Summary      Request a new policy
// @Tags         policies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      requestPolicyRequest  true  "Policy request details"
// @Success      201   {object}  domain.Policy
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/policies [post]
func (h *PolicyHandler) Request(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req requestPolicyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	policy, err := h.service.RequestPolicy(c.Request().Context(), ports.RequestPolicyInput{
		UserID:       userID,
		PolicyTypeID: req.PolicyTypeID,
		Vehicle:      toVehicle(req.Vehicle),
		Owner:        toOwner(req.Owner),
		Premium:      req.Premium,
		StartDate:    req.StartDate,
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, policy)
}

// AdminList handles GET /v1/admin/policies — all policies.
func (h *PolicyHandler) AdminList(c echo.Context) error {
	policies, err := h.service.ListPolicies(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policies)
}

// UpdateStatus handles PATCH /v1/admin/policies/:id/status.
func (h *PolicyHandler) UpdateStatus(c echo.Context) error {
	var req updatePolicyStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	policy, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.PolicyStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, policy)
}

// Assign handles POST /v1/admin/policies — direct assignment of an active
// policy to a user.
func (h *PolicyHandler) Assign(c echo.Context) error {
	var req assignPolicyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	policy, err := h.service.AssignPolicy(c.Request().Context(), ports.AssignPolicyInput{
		UserID:       req.UserID,
		PolicyTypeID: req.PolicyTypeID,
		Vehicle:      toVehicle(req.Vehicle),
		Owner:        toOwner(req.Owner),
		Premium:      req.Premium,
		StartDate:    req.StartDate,
		ExpiryDate:   req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, policy)
}

func toVehicle(req vehicleRequest) domain.Vehicle {
	return domain.Vehicle{
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		RegNumber:     req.RegNumber,
		Category:      req.Category,
		EngineNumber:  req.EngineNumber,
		ChassisNumber: req.ChassisNumber,
		EnergyType:    req.EnergyType,
		SeatingCap:    req.SeatingCap,
		Tonnage:       req.Tonnage,
	}
}

func toOwner(req ownerRequest) domain.Owner {
	return domain.Owner{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}
