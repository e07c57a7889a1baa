package ports

import (
	"context"
	"time"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

// LeadInput carries the editable fields of a lead.
type LeadInput struct {
	Name         string
	Email        string
	Phone        string
	Company      string
	Source       string
	Status       string
	Priority     string
	DealValue    float64
	AssignedTo   string
	NextFollowUp *time.Time
}

// ListLeadsInput carries the customer table filters. Status and Priority
// accept domain.FilterAll or empty for no filtering.
type ListLeadsInput struct {
	Search   string
	Status   string
	Priority string
}

// ListLeadsResult holds the filtered rows. Stats are computed over every
// lead returned by the backend, not just the filtered rows.
type ListLeadsResult struct {
	Items []domain.Lead
	Stats domain.LeadStats
}

// ImportResult reports the outcome of one item of a bulk import.
type ImportResult struct {
	Index int
	Email string
	Lead  *domain.Lead
	Err   error
}

type LeadService interface {
	List(ctx context.Context, input ListLeadsInput) (*ListLeadsResult, error)
	Get(ctx context.Context, id string) (*domain.Lead, error)
	Create(ctx context.Context, input LeadInput) (*domain.Lead, error)
	Update(ctx context.Context, id string, input LeadInput) (*domain.Lead, error)
	Delete(ctx context.Context, id string) error
	Assignees(ctx context.Context) ([]domain.StaffMember, error)
}
