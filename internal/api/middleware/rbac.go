package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/core/domain"
)

// RBAC enforces role-based access control against the closed Role enum.
// Role strings outside the enum never match an allowed set.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, err := domain.ParseRole(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden: insufficient role")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden: insufficient role")
			}
			return next(c)
		}
	}
}
