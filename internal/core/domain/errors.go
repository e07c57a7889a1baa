package domain

import "errors"

// Request pipeline and route guard failures. The pipeline wraps these so that
// callers can branch with errors.Is.
var (
	ErrAuthenticationExpired = errors.New("authentication expired")
	ErrAuthorizationDenied   = errors.New("authorization denied")
	ErrValidationFailure     = errors.New("request rejected")
	ErrServerFailure         = errors.New("server failure")
	ErrTransportFailure      = errors.New("server unreachable")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrEmptyBatch         = errors.New("batch cannot be empty")
)

// ErrIncompleteSession is returned when a session is stored without both a
// token and a user.
var ErrIncompleteSession = errors.New("session requires both token and user")
