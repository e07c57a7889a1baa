package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

type staffService struct {
	api ports.APIClient
	log zerolog.Logger
}

// NewStaffService returns a StaffService backed by the users endpoints.
func NewStaffService(api ports.APIClient, log zerolog.Logger) ports.StaffService {
	return &staffService{api: api, log: log}
}

type staffPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// List fetches the team and applies the team screen's search and status filters.
func (s *staffService) List(ctx context.Context, in ports.ListStaffInput) (*ports.ListStaffResult, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{Method: http.MethodGet, Path: "/users"})
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", rejected(err, nil))
	}

	var members []domain.StaffMember
	if err := resp.DecodeData(&members); err != nil {
		return nil, fmt.Errorf("list staff: decode: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(in.Search))
	out := &ports.ListStaffResult{Items: make([]domain.StaffMember, 0, len(members))}
	for _, m := range members {
		if m.IsActive {
			out.Active++
		} else {
			out.Inactive++
		}
		if !matchesAny(query, m.Name, m.Email) || !matchesFilter(in.Status, m.Status()) {
			continue
		}
		out.Items = append(out.Items, m)
	}
	out.Total = len(members)
	return out, nil
}

// Register creates a staff account. Password hashing is the backend's job.
func (s *staffService) Register(ctx context.Context, in ports.StaffInput) (*domain.StaffMember, error) {
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	resp, err := s.api.Do(ctx, ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/users/register",
		Body:   toStaffPayload(in),
	})
	if err != nil {
		return nil, fmt.Errorf("register staff: %w", rejected(err, nil))
	}

	member := decodeStaff(resp, in)
	s.log.Info().Str("email", member.Email).Str("role", member.Role).Msg("staff registered")
	return member, nil
}

// Update edits a staff account. An empty password or a nil IsActive leaves
// that field unchanged.
func (s *staffService) Update(ctx context.Context, id string, in ports.StaffInput) (*domain.StaffMember, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{
		Method: http.MethodPut,
		Path:   "/users/" + url.PathEscape(id),
		Body:   toStaffPayload(in),
	})
	if err != nil {
		return nil, fmt.Errorf("update staff: %w", rejected(err, domain.ErrStaffNotFound))
	}

	member := decodeStaff(resp, in)
	if member.ID == "" {
		member.ID = id
	}
	s.log.Info().Str("staff_id", member.ID).Msg("staff updated")
	return member, nil
}

func toStaffPayload(in ports.StaffInput) staffPayload {
	return staffPayload{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		IsActive: in.IsActive,
	}
}

func decodeStaff(resp *ports.APIResponse, in ports.StaffInput) *domain.StaffMember {
	var member domain.StaffMember
	if err := resp.DecodeData(&member); err == nil && member.Email != "" {
		return &member
	}
	return &domain.StaffMember{
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		IsActive: in.IsActive == nil || *in.IsActive,
	}
}
