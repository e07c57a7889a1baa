package ports

import (
	"context"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) domain.Session
}
