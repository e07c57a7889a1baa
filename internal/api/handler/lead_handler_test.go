package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

const validLead = `{"name":"Eve","email":"eve@example.com","phone":"555 123 4567","assignedTo":"u1","dealValue":100}`

func TestLeadHandler_Create_Success(t *testing.T) {
	svc := &stubLeadService{createFn: func(_ context.Context, in ports.LeadInput) (*domain.Lead, error) {
		if in.Phone != "5551234567" {
			t.Fatalf("expected phone without spaces, got %q", in.Phone)
		}
		return &domain.Lead{ID: "l1", Name: in.Name, Email: in.Email}, nil
	}}
	h := NewLeadHandler(svc, nil)

	c, rec := newJSONContext(http.MethodPost, "/admin/customers", validLead)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestLeadHandler_Create_Validation(t *testing.T) {
	svc := &stubLeadService{createFn: func(context.Context, ports.LeadInput) (*domain.Lead, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	h := NewLeadHandler(svc, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"short phone", `{"name":"Eve","email":"eve@example.com","phone":"12345","assignedTo":"u1"}`, "phone must be 10 digits"},
		{"letters in phone", `{"name":"Eve","email":"eve@example.com","phone":"555-123-456a","assignedTo":"u1"}`, "phone must be 10 digits"},
		{"missing assignee", `{"name":"Eve","email":"eve@example.com","phone":"5551234567"}`, "assignedTo is required"},
		{"bad email", `{"name":"Eve","email":"eve","phone":"5551234567","assignedTo":"u1"}`, "email must be a valid email"},
		{"negative deal", `{"name":"Eve","email":"eve@example.com","phone":"5551234567","assignedTo":"u1","dealValue":-1}`, "dealValue must be at least 0"},
		{"unknown status", `{"name":"Eve","email":"eve@example.com","phone":"5551234567","assignedTo":"u1","status":"won"}`, "status must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/admin/customers", tt.body)
			err := h.Create(c)
			if httpStatus(err) != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestLeadHandler_List_PassesFilters(t *testing.T) {
	svc := &stubLeadService{listFn: func(_ context.Context, in ports.ListLeadsInput) (*ports.ListLeadsResult, error) {
		if in.Search != "acme" || in.Status != "new" || in.Priority != "all" {
			t.Fatalf("unexpected filters %+v", in)
		}
		return &ports.ListLeadsResult{Items: []domain.Lead{{ID: "l1"}}, Stats: domain.LeadStats{Total: 3}}, nil
	}}
	h := NewLeadHandler(svc, nil)

	c, rec := newJSONContext(http.MethodGet, "/admin/customers?search=acme&status=new&priority=all", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp leadListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Items) != 1 || resp.Stats.Total != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestLeadHandler_Import(t *testing.T) {
	imp := &stubImporter{importFn: func(_ context.Context, inputs []ports.LeadInput) ([]ports.ImportResult, error) {
		if len(inputs) != 2 {
			t.Fatalf("expected 2 inputs, got %d", len(inputs))
		}
		return []ports.ImportResult{
			{Index: 0, Email: inputs[0].Email, Lead: &domain.Lead{ID: "l1"}},
			{Index: 1, Email: inputs[1].Email, Err: domain.ErrAuthenticationExpired},
		}, nil
	}}
	h := NewLeadHandler(&stubLeadService{}, imp)

	c, rec := newJSONContext(http.MethodPost, "/admin/customers/import", "["+validLead+","+validLead+"]")
	if err := h.Import(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp importResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Created != 1 || resp.Failed != 1 || resp.Items[1].Error == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestLeadHandler_Import_Rejections(t *testing.T) {
	h := NewLeadHandler(&stubLeadService{}, &stubImporter{importFn: func(context.Context, []ports.LeadInput) ([]ports.ImportResult, error) {
		t.Fatal("importer must not be called")
		return nil, nil
	}})

	c, _ := newJSONContext(http.MethodPost, "/admin/customers/import", `[]`)
	if err := h.Import(c); httpStatus(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %v", err)
	}

	c, _ = newJSONContext(http.MethodPost, "/admin/customers/import", `[`+validLead+`,{"name":"x"}]`)
	err := h.Import(c)
	if httpStatus(err) != http.StatusUnprocessableEntity || !strings.Contains(err.Error(), "row[1]") {
		t.Fatalf("expected 422 naming row[1], got %v", err)
	}
}
