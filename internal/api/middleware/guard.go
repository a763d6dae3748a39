package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/motorshield/insurance-portal/internal/api/metrics"
	"github.com/motorshield/insurance-portal/internal/core/ports"
)

// RequireRole gates a route subtree on the role resolved from the roles
// collection rather than the token claim, so grants and revocations take
// effect without re-login. The failure channels are distinct:
//   - no authenticated user in context → 401
//   - resolved role not allowed        → 403
//   - resolution failure               → 403 (fail closed, never a raw error)
func RequireRole(resolver ports.RoleResolver, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			res, err := resolver.Resolve(c.Request().Context(), userID)
			if err != nil {
				metrics.RoleResolutionsTotal.WithLabelValues("error").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if res.Found {
				metrics.RoleResolutionsTotal.WithLabelValues("found").Inc()
			} else {
				metrics.RoleResolutionsTotal.WithLabelValues("defaulted").Inc()
			}

			if _, ok := allowed[res.Effective()]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			c.Set("role", res.Effective())
			return next(c)
		}
	}
}
