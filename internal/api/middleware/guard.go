package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/api/metrics"
	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

// UserKey is the context key the admitted operator is stored under.
const UserKey = "user"

// Navigator tracks the screen the operator is on.
type Navigator interface {
	ports.Navigator
	Navigate(ctx context.Context, path string) error
}

// Guard evaluates the route guard for every request to a protected screen.
// Denied requests are redirected with 303 and never reach the handler;
// admitted ones carry the operator under UserKey.
func Guard(guard ports.RouteGuard, nav Navigator, requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			route := domain.Route{Path: c.Path(), RequiredRole: requiredRole}

			decision := guard.Evaluate(ctx, route)
			metrics.GuardDecisionsTotal.WithLabelValues(string(decision.State), decision.Reason).Inc()

			if !decision.Allowed() {
				nav.Redirect(ctx, decision.Redirect)
				return c.Redirect(http.StatusSeeOther, decision.Redirect)
			}

			if err := nav.Navigate(ctx, route.Path); err != nil {
				return err
			}
			c.Set(UserKey, decision.User)
			return next(c)
		}
	}
}
