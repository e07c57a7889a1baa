package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects to the login screen when the backend rejected the session.
//   - Redirects to forbiddenPath (or login when empty) when it refused the operator.
//   - Maps the remaining pipeline and domain errors to status codes.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(loginPath, forbiddenPath string, log zerolog.Logger) echo.HTTPErrorHandler {
	if forbiddenPath == "" {
		forbiddenPath = loginPath
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch {
		case errors.Is(err, domain.ErrAuthenticationExpired):
			_ = c.Redirect(http.StatusSeeOther, loginPath)
			return
		case errors.Is(err, domain.ErrAuthorizationDenied):
			_ = c.Redirect(http.StatusSeeOther, forbiddenPath)
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrLeadNotFound):
		return http.StatusNotFound, errorResponse{Error: "customer not found"}
	case errors.Is(err, domain.ErrStaffNotFound):
		return http.StatusNotFound, errorResponse{Error: "team member not found"}
	case errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrValidationFailure):
		return rejectedStatus(err), errorResponse{Error: message(err, "request rejected")}
	case errors.Is(err, domain.ErrServerFailure):
		return http.StatusBadGateway, errorResponse{Error: message(err, "server failure"), Retryable: true}
	case errors.Is(err, domain.ErrTransportFailure):
		return http.StatusServiceUnavailable, errorResponse{Error: message(err, "server unreachable"), Retryable: true}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// rejectedStatus passes the backend's 4xx through. A rejection carried in a
// 2xx envelope becomes 422.
func rejectedStatus(err error) int {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) && sc.StatusCode() >= 400 && sc.StatusCode() < 500 {
		return sc.StatusCode()
	}
	return http.StatusUnprocessableEntity
}

func message(err error, fallback string) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return fallback
}
