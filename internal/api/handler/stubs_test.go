package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, email, password string) (domain.Session, error)
	logoutFn func(ctx context.Context) error
	current  domain.Session
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context) error { return s.logoutFn(ctx) }

func (s *stubAuthService) Current(context.Context) domain.Session { return s.current }

type stubLeadService struct {
	ports.LeadService
	listFn   func(ctx context.Context, in ports.ListLeadsInput) (*ports.ListLeadsResult, error)
	createFn func(ctx context.Context, in ports.LeadInput) (*domain.Lead, error)
}

func (s *stubLeadService) List(ctx context.Context, in ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubLeadService) Create(ctx context.Context, in ports.LeadInput) (*domain.Lead, error) {
	return s.createFn(ctx, in)
}

type stubStaffService struct {
	ports.StaffService
	listFn     func(ctx context.Context, in ports.ListStaffInput) (*ports.ListStaffResult, error)
	registerFn func(ctx context.Context, in ports.StaffInput) (*domain.StaffMember, error)
	updateFn   func(ctx context.Context, id string, in ports.StaffInput) (*domain.StaffMember, error)
}

func (s *stubStaffService) List(ctx context.Context, in ports.ListStaffInput) (*ports.ListStaffResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubStaffService) Register(ctx context.Context, in ports.StaffInput) (*domain.StaffMember, error) {
	return s.registerFn(ctx, in)
}

func (s *stubStaffService) Update(ctx context.Context, id string, in ports.StaffInput) (*domain.StaffMember, error) {
	return s.updateFn(ctx, id, in)
}

type stubImporter struct {
	importFn func(ctx context.Context, inputs []ports.LeadInput) ([]ports.ImportResult, error)
}

func (s *stubImporter) Import(ctx context.Context, inputs []ports.LeadInput) ([]ports.ImportResult, error) {
	return s.importFn(ctx, inputs)
}

// newJSONContext builds an echo context with the console validator attached.
func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpStatus returns the status carried by an *echo.HTTPError, or 0.
func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
