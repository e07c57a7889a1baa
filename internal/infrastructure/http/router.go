// Package http serves the operational endpoints of the console: liveness,
// readiness and Prometheus metrics. It listens on its own port so probes
// never pass through the route guard.
package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/crmdesk/admin-console/internal/infrastructure/http/handlers"
)

// NewRouter builds the ops Echo instance. deps are pinged by the readiness
// probe, keyed by the name reported in the response.
func NewRouter(deps map[string]handlers.Pinger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadinessHandler(deps)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
