package handler

import (
	"errors"
	"strings"

	"github.com/crmdesk/admin-console/internal/core/ports"
)

// --- Request → Service input ---

func toLeadInput(req leadRequest) ports.LeadInput {
	return ports.LeadInput{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.Join(strings.Fields(req.Phone), ""),
		Company:      strings.TrimSpace(req.Company),
		Source:       req.Source,
		Status:       req.Status,
		Priority:     req.Priority,
		DealValue:    req.DealValue,
		AssignedTo:   req.AssignedTo,
		NextFollowUp: req.NextFollowUp,
	}
}

func toStaffInput(name, email, password, role string, isActive *bool) ports.StaffInput {
	return ports.StaffInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
		Role:     role,
		IsActive: isActive,
	}
}

// --- Service result → Response ---

func toImportResponse(results []ports.ImportResult) importResponse {
	resp := importResponse{Items: make([]importItemResponse, 0, len(results))}
	for _, r := range results {
		item := importItemResponse{Index: r.Index, Email: r.Email, Lead: r.Lead}
		if r.Err != nil {
			item.Error = userMessage(r.Err)
			resp.Failed++
		} else {
			resp.Created++
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

// userMessage is the text shown next to a failed row.
func userMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}
