package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luct/reporting-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: user_id and a role
// from the closed enum must both be present, otherwise the JWT is
// structurally valid but operationally unusable — reject with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	userID, _ := c.Get("user_id").(string)
	rawRole, _ := c.Get("role").(string)

	role, err := domain.ParseRole(rawRole)
	if err != nil || userID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get("name").(string)
	facultyID, _ := c.Get("faculty_id").(string)

	return domain.Principal{
		ID:        userID,
		Role:      role,
		Name:      name,
		FacultyID: facultyID,
	}, nil
}
