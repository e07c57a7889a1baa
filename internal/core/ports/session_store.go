package ports

import (
	"context"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

// SessionReader is the read side used by the request pipeline and the route guard.
type SessionReader interface {
	// Get never fails: absent or malformed data yields the empty session.
	Get(ctx context.Context) domain.Session
}

// SessionStore is the single owner of the operator session.
type SessionStore interface {
	SessionReader
	Set(ctx context.Context, token string, user *domain.User) error
	Clear(ctx context.Context) error
	// ClearIf clears the session only while it still holds token.
	ClearIf(ctx context.Context, token string) (bool, error)
}
