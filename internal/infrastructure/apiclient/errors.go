package apiclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

// Error is a failed backend call. Kind is one of the domain sentinels
// (ErrAuthenticationExpired, ErrValidationFailure, ErrServerFailure,
// ErrTransportFailure) and matches through errors.Is, as does Err.
type Error struct {
	Kind    error
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: %v: %d %s", e.Method, e.Path, e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s %s: %v: %d %s", e.Method, e.Path, e.Kind, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v: %v", e.Method, e.Path, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// StatusCode is the HTTP status received, or 0 when no response arrived.
func (e *Error) StatusCode() int {
	return e.Status
}

// Retryable reports whether offering the operator a retry makes sense.
func (e *Error) Retryable() bool {
	return errors.Is(e.Kind, domain.ErrServerFailure) || errors.Is(e.Kind, domain.ErrTransportFailure)
}

// UserMessage is the text a screen shows for this failure.
func (e *Error) UserMessage() string {
	switch {
	case errors.Is(e.Kind, domain.ErrTransportFailure):
		return "Server not responding. Please try again."
	case e.Message != "":
		return e.Message
	case errors.Is(e.Kind, domain.ErrServerFailure):
		return "The server failed to process the request."
	default:
		return "Request rejected."
	}
}
