package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

func TestStaffHandler_Register(t *testing.T) {
	svc := &stubStaffService{registerFn: func(_ context.Context, in ports.StaffInput) (*domain.StaffMember, error) {
		if in.IsActive != nil || in.Role != domain.RoleDesigner {
			t.Fatalf("unexpected input %+v", in)
		}
		return &domain.StaffMember{ID: "s1", Name: in.Name, Email: in.Email, Role: in.Role, IsActive: true}, nil
	}}
	h := NewStaffHandler(svc)

	body := `{"name":"Cy","email":"cy@crm.io","password":"secret1","confirmPassword":"secret1","role":"designer"}`
	c, rec := newJSONContext(http.MethodPost, "/admin/staff", body)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestStaffHandler_UpdateKeepsStatusWhenOmitted(t *testing.T) {
	svc := &stubStaffService{updateFn: func(_ context.Context, id string, in ports.StaffInput) (*domain.StaffMember, error) {
		if id != "s2" || in.IsActive != nil {
			t.Fatalf("expected status left unset, got %s %+v", id, in)
		}
		return &domain.StaffMember{ID: id, Name: in.Name, Email: in.Email, Role: in.Role}, nil
	}}
	h := NewStaffHandler(svc)

	c, rec := newJSONContext(http.MethodPut, "/admin/staff/s2", `{"name":"Bob","email":"bob@crm.io","role":"sales"}`)
	c.SetParamNames("id")
	c.SetParamValues("s2")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStaffHandler_Register_Validation(t *testing.T) {
	h := NewStaffHandler(&stubStaffService{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"short password", `{"name":"Cy","email":"cy@crm.io","password":"abc","confirmPassword":"abc","role":"sales"}`, "password must be at least 6"},
		{"mismatch", `{"name":"Cy","email":"cy@crm.io","password":"secret1","confirmPassword":"secret2","role":"sales"}`, "confirmPassword does not match"},
		{"unknown role", `{"name":"Cy","email":"cy@crm.io","password":"secret1","confirmPassword":"secret1","role":"intern"}`, "role must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/admin/staff", tt.body)
			err := h.Register(c)
			if httpStatus(err) != http.StatusUnprocessableEntity || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected 422 with %q, got %v", tt.want, err)
			}
		})
	}
}

func TestStaffHandler_List(t *testing.T) {
	svc := &stubStaffService{listFn: func(_ context.Context, in ports.ListStaffInput) (*ports.ListStaffResult, error) {
		if in.Status != "inactive" {
			t.Fatalf("unexpected filter %+v", in)
		}
		return &ports.ListStaffResult{Total: 3, Active: 2, Inactive: 1}, nil
	}}
	h := NewStaffHandler(svc)

	c, rec := newJSONContext(http.MethodGet, "/admin/team?status=inactive", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
