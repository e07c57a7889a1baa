package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/crmdesk/admin-console/docs"
	"github.com/crmdesk/admin-console/internal/api/handler"
	"github.com/crmdesk/admin-console/internal/api/middleware"
	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

const (
	DashboardPath = "/admin/dashboard"
	ProfilePath   = "/admin/profile"
)

// Deps are the collaborators the console screens are served from.
type Deps struct {
	Auth     ports.AuthService
	Leads    ports.LeadService
	Staff    ports.StaffService
	Importer handler.LeadImporter
	Guard    ports.RouteGuard

	// Navigator is told about every screen change; views are registered on it.
	Navigator Navigator

	LoginPath string
	// ForbiddenPath receives operators the backend refused. Defaults to LoginPath.
	ForbiddenPath string
	Log           zerolog.Logger
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// Navigator is the navigation surface the router registers screens on.
type Navigator interface {
	middleware.Navigator
	Register(path, name string)
}

type screen struct {
	method  string
	path    string
	name    string
	role    string
	handler echo.HandlerFunc
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.LoginPath, d.ForbiddenPath, d.Log)

	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "crm_console",
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, DashboardPath, ProfilePath, d.LoginPath)
	leadHandler := handler.NewLeadHandler(d.Leads, d.Importer)
	staffHandler := handler.NewStaffHandler(d.Staff)
	dashboardHandler := handler.NewDashboardHandler(d.Leads, d.Staff)

	// --- Public screens ---
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, d.LoginPath) })
	e.GET("/admin", func(c echo.Context) error { return c.Redirect(http.StatusSeeOther, DashboardPath) })
	e.GET(d.LoginPath, authHandler.LoginPage)
	e.POST(d.LoginPath, authHandler.Login)
	e.POST("/admin/logout", authHandler.Logout)
	d.Navigator.Register(d.LoginPath, "login")

	// --- Protected screens ---
	screens := []screen{
		{http.MethodGet, DashboardPath, "dashboard", domain.RoleAdmin, dashboardHandler.Show},
		{http.MethodGet, ProfilePath, "profile", "", authHandler.Profile},
		{http.MethodGet, "/admin/customers", "customers", domain.RoleAdmin, leadHandler.List},
		{http.MethodPost, "/admin/customers", "customers.create", domain.RoleAdmin, leadHandler.Create},
		{http.MethodPost, "/admin/customers/import", "customers.import", domain.RoleAdmin, leadHandler.Import},
		{http.MethodGet, "/admin/customers/assignees", "customers.assignees", domain.RoleAdmin, leadHandler.Assignees},
		{http.MethodGet, "/admin/customers/:id", "customers.detail", domain.RoleAdmin, leadHandler.Get},
		{http.MethodPut, "/admin/customers/:id", "customers.edit", domain.RoleAdmin, leadHandler.Update},
		{http.MethodDelete, "/admin/customers/:id", "customers.delete", domain.RoleAdmin, leadHandler.Delete},
		{http.MethodGet, "/admin/team", "team", domain.RoleAdmin, staffHandler.List},
		{http.MethodPost, "/admin/staff", "staff.create", domain.RoleAdmin, staffHandler.Register},
		{http.MethodPut, "/admin/staff/:id", "staff.edit", domain.RoleAdmin, staffHandler.Update},
	}
	views := make(map[string]bool, len(screens))
	for _, s := range screens {
		if !views[s.path] {
			d.Navigator.Register(s.path, s.name)
			views[s.path] = true
		}
		e.Add(s.method, s.path, s.handler, middleware.Guard(d.Guard, d.Navigator, s.role))
	}

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
