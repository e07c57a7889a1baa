package ports

import (
	"context"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

type StaffInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	// IsActive nil leaves the status unchanged on update. New accounts
	// default to active.
	IsActive *bool
}

type ListStaffInput struct {
	Search string
	Status string // "active", "inactive", "all" or empty
}

type ListStaffResult struct {
	Items    []domain.StaffMember
	Total    int
	Active   int
	Inactive int
}

type StaffService interface {
	List(ctx context.Context, input ListStaffInput) (*ListStaffResult, error)
	Register(ctx context.Context, input StaffInput) (*domain.StaffMember, error)
	Update(ctx context.Context, id string, input StaffInput) (*domain.StaffMember, error)
}
