package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// ClaimHandler handles claim filing and admin review.
type ClaimHandler struct {
	service ports.ClaimService
}

func NewClaimHandler(service ports.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// List handles GET /v1/claims — the caller's own claims with policy summaries.
//
// @Summary      List own claims
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.ClaimWithPolicy
// @Failure      401  {object}  errorResponse
// @Router       /v1/claims [get]
func (h *ClaimHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	claims, err := h.service.ListClaims(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// File handles POST /v1/claims.
//
// @Summary      File a claim against an active policy
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      fileClaimRequest  true  "Claim details"
// @Success      201   {object}  domain.Claim
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/claims [post]
func (h *ClaimHandler) File(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req fileClaimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	claim, err := h.service.FileClaim(c.Request().Context(), ports.FileClaimInput{
		UserID:          userID,
		PolicyID:        req.PolicyID,
		AccidentDate:    req.AccidentDate,
		Description:     req.Description,
		EstimatedAmount: req.EstimatedAmount,
		Uploads:         req.Uploads,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, claim)
}

// AdminList handles GET /v1/admin/claims — all claims.
func (h *ClaimHandler) AdminList(c echo.Context) error {
	claims, err := h.service.ListClaims(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claims)
}

// Review handles PATCH /v1/admin/claims/:id.
func (h *ClaimHandler) Review(c echo.Context) error {
	var req reviewClaimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	claim, err := h.service.ReviewClaim(c.Request().Context(), ports.ReviewClaimInput{
		ClaimID:        c.Param("id"),
		Status:         domain.ClaimStatus(req.Status),
		ApprovedAmount: req.ApprovedAmount,
		AdminNotes:     req.AdminNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, claim)
}
