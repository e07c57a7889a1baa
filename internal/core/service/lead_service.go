package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

type LeadService struct {
	api    ports.APIClient
	logger zerolog.Logger
}

func NewLeadService(api ports.APIClient, logger zerolog.Logger) *LeadService {
	return &LeadService{api: api, logger: logger}
}

type leadPayload struct {
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company,omitempty"`
	Source       string     `json:"source"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DealValue    float64    `json:"dealValue"`
	AssignedTo   string     `json:"assignedTo"`
	NextFollowUp *time.Time `json:"nextFollowUp,omitempty"`
}

// List fetches every lead and filters them the way the customer table does:
// a case-insensitive substring match on name, email or company, plus exact
// status and priority filters. Stats cover the unfiltered set.
func (s *LeadService) List(ctx context.Context, input ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{Method: http.MethodGet, Path: "/leads"})
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", rejected(err, nil))
	}

	var leads []domain.Lead
	if err := resp.DecodeData(&leads); err != nil {
		return nil, fmt.Errorf("list leads: decode: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(input.Search))
	items := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if !matchesAny(query, l.Name, l.Email, l.Company) {
			continue
		}
		if !matchesFilter(input.Status, string(l.Status)) || !matchesFilter(input.Priority, l.Priority) {
			continue
		}
		items = append(items, l)
	}

	return &ports.ListLeadsResult{
		Items: items,
		Stats: domain.ComputeLeadStats(leads),
	}, nil
}

func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{Method: http.MethodGet, Path: leadPath(id)})
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", rejected(err, domain.ErrLeadNotFound))
	}

	var lead domain.Lead
	if err := resp.DecodeData(&lead); err != nil {
		return nil, fmt.Errorf("get lead: decode: %w", err)
	}
	return &lead, nil
}

func (s *LeadService) Create(ctx context.Context, input ports.LeadInput) (*domain.Lead, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/leads",
		Body:   toLeadPayload(input),
	})
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", rejected(err, nil))
	}

	lead, err := decodeLead(resp, input)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	s.logger.Info().Str("lead_id", lead.ID).Str("email", lead.Email).Msg("lead created")
	return lead, nil
}

func (s *LeadService) Update(ctx context.Context, id string, input ports.LeadInput) (*domain.Lead, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{
		Method: http.MethodPut,
		Path:   leadPath(id),
		Body:   toLeadPayload(input),
	})
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", rejected(err, domain.ErrLeadNotFound))
	}

	lead, err := decodeLead(resp, input)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	if lead.ID == "" {
		lead.ID = id
	}

	s.logger.Info().Str("lead_id", lead.ID).Msg("lead updated")
	return lead, nil
}

func (s *LeadService) Delete(ctx context.Context, id string) error {
	if _, err := s.api.Do(ctx, ports.APIRequest{Method: http.MethodDelete, Path: leadPath(id)}); err != nil {
		return fmt.Errorf("delete lead: %w", rejected(err, domain.ErrLeadNotFound))
	}
	s.logger.Info().Str("lead_id", id).Msg("lead deleted")
	return nil
}

// Assignees lists the users a lead can be assigned to.
func (s *LeadService) Assignees(ctx context.Context) ([]domain.StaffMember, error) {
	resp, err := s.api.Do(ctx, ports.APIRequest{Method: http.MethodGet, Path: "/auth/users"})
	if err != nil {
		return nil, fmt.Errorf("list assignees: %w", rejected(err, nil))
	}

	var users []domain.StaffMember
	if err := resp.DecodeData(&users); err != nil {
		return nil, fmt.Errorf("list assignees: decode: %w", err)
	}
	return users, nil
}

func toLeadPayload(in ports.LeadInput) leadPayload {
	p := leadPayload{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Company:      in.Company,
		Source:       in.Source,
		Status:       in.Status,
		Priority:     in.Priority,
		DealValue:    in.DealValue,
		AssignedTo:   in.AssignedTo,
		NextFollowUp: in.NextFollowUp,
	}
	if p.Source == "" {
		p.Source = "website"
	}
	if p.Status == "" {
		p.Status = string(domain.LeadNew)
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	return p
}

// decodeLead reads the created or updated lead from the envelope. Backends
// that answer without data get the submitted fields echoed back.
func decodeLead(resp *ports.APIResponse, in ports.LeadInput) (*domain.Lead, error) {
	var lead domain.Lead
	if len(resp.Envelope.Data) > 0 {
		if err := resp.DecodeData(&lead); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return &lead, nil
	}

	p := toLeadPayload(in)
	lead = domain.Lead{
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Company:      p.Company,
		Source:       p.Source,
		Status:       domain.LeadStatus(p.Status),
		Priority:     p.Priority,
		DealValue:    p.DealValue,
		NextFollowUp: p.NextFollowUp,
	}
	if p.AssignedTo != "" {
		lead.AssignedTo = &domain.Assignee{ID: p.AssignedTo}
	}
	return &lead, nil
}

func leadPath(id string) string {
	return "/leads/" + url.PathEscape(id)
}

func matchesAny(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == domain.FilterAll || filter == value
}

// rejected tags a backend 403 with ErrAuthorizationDenied, and a 404 with
// missing when given, keeping the original error in the chain.
func rejected(err, missing error) error {
	var sc interface{ StatusCode() int }
	if !errors.As(err, &sc) {
		return err
	}
	switch {
	case sc.StatusCode() == http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrAuthorizationDenied, err)
	case sc.StatusCode() == http.StatusNotFound && missing != nil:
		return fmt.Errorf("%w: %w", missing, err)
	}
	return err
}
