package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/api/middleware"
	"github.com/crmdesk/admin-console/internal/core/domain"
)

// ctxUser returns the operator the guard admitted. A missing user means the
// route was mounted without the guard.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.UserKey).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing operator")
	}
	return user, nil
}
