package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/infrastructure/apiclient"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	return handleWith(t, "", err)
}

func handleWith(t *testing.T, forbiddenPath string, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/customers", nil), rec)

	NewHTTPErrorHandler("/admin/login", forbiddenPath, zerolog.Nop())(err, c)

	var body errorResponse
	if rec.Code != http.StatusSeeOther {
		if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
			t.Fatalf("invalid json: %v", jerr)
		}
	}
	return rec, body
}

func TestErrorHandler_AuthFailuresRedirect(t *testing.T) {
	for _, err := range []error{
		&apiclient.Error{Kind: domain.ErrAuthenticationExpired, Status: http.StatusUnauthorized},
		fmt.Errorf("guard: %w", domain.ErrAuthorizationDenied),
	} {
		rec, _ := handle(t, err)
		if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/admin/login" {
			t.Fatalf("%v: expected redirect to login, got %d %q", err, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}
}

func TestErrorHandler_DeniedGoesToForbiddenPath(t *testing.T) {
	err := fmt.Errorf("list leads: %w: %w", domain.ErrAuthorizationDenied,
		&apiclient.Error{Kind: domain.ErrValidationFailure, Status: http.StatusForbidden})

	rec, _ := handleWith(t, "/admin/forbidden", err)
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/admin/forbidden" {
		t.Fatalf("expected redirect to forbidden path, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec, _ = handleWith(t, "/admin/forbidden", &apiclient.Error{Kind: domain.ErrAuthenticationExpired, Status: http.StatusUnauthorized})
	if rec.Header().Get(echo.HeaderLocation) != "/admin/login" {
		t.Fatalf("expired sessions still go to login, got %q", rec.Header().Get(echo.HeaderLocation))
	}
}

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		message   string
		retryable bool
	}{
		{"invalid credentials", fmt.Errorf("login: %w", domain.ErrInvalidCredentials), http.StatusUnauthorized, "invalid credentials", false},
		{"lead not found", fmt.Errorf("%w: %w", domain.ErrLeadNotFound, &apiclient.Error{Kind: domain.ErrValidationFailure, Status: 404}), http.StatusNotFound, "customer not found", false},
		{"backend validation", &apiclient.Error{Kind: domain.ErrValidationFailure, Status: 409, Message: "email taken"}, http.StatusConflict, "email taken", false},
		{"envelope rejection", &apiclient.Error{Kind: domain.ErrValidationFailure, Status: 200, Message: "duplicate"}, http.StatusUnprocessableEntity, "duplicate", false},
		{"server failure", &apiclient.Error{Kind: domain.ErrServerFailure, Status: 500}, http.StatusBadGateway, "The server failed to process the request.", true},
		{"transport failure", &apiclient.Error{Kind: domain.ErrTransportFailure, Err: errors.New("dial tcp")}, http.StatusServiceUnavailable, "Server not responding. Please try again.", true},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload", false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handle(t, tt.err)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if body.Error != tt.message || body.Retryable != tt.retryable {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}
