package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/core/domain"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// AdminUserHandler handles admin user management: listing accounts with their
// resolved roles and granting or revoking the admin role.
type AdminUserHandler struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	resolver ports.RoleResolver
}

func NewAdminUserHandler(users ports.UserRepository, roles ports.RoleRepository, resolver ports.RoleResolver) *AdminUserHandler {
	return &AdminUserHandler{users: users, roles: roles, resolver: resolver}
}

// List handles GET /v1/admin/users. Each user is returned with the role the
// guards would resolve for them, plus whether an explicit record backs it.
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userWithRoleResponse, 0, len(users))
	for _, u := range users {
		entry := userWithRoleResponse{User: u, Role: domain.RoleUser}
		if res, err := h.resolver.Resolve(c.Request().Context(), u.ID); err == nil {
			entry.Role = res.Effective()
			entry.RoleFound = res.Found
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, out)
}

// SetRole handles PUT /v1/admin/users/:id/role. The resolver cache for the
// user is invalidated so the new role takes effect on their next request.
func (h *AdminUserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	userID := c.Param("id")
	if _, err := h.users.FindByID(c.Request().Context(), userID); err != nil {
		return err
	}

	if err := h.roles.Upsert(c.Request().Context(), userID, req.Role); err != nil {
		return err
	}
	h.resolver.Invalidate(userID)

	return c.JSON(http.StatusOK, map[string]string{"user_id": userID, "role": req.Role})
}

// RevokeRole handles DELETE /v1/admin/users/:id/role, deleting the explicit
// role record so the user falls back to the default role.
func (h *AdminUserHandler) RevokeRole(c echo.Context) error {
	userID := c.Param("id")
	if err := h.roles.Delete(c.Request().Context(), userID); err != nil {
		return err
	}
	h.resolver.Invalidate(userID)
	return c.NoContent(http.StatusNoContent)
}
