package domain

import (
	"encoding/json"
	"time"
)

// LeadStatus is the pipeline stage of a lead.
type LeadStatus string

const (
	LeadNew         LeadStatus = "new"
	LeadContacted   LeadStatus = "contacted"
	LeadQualified   LeadStatus = "qualified"
	LeadProposal    LeadStatus = "proposal"
	LeadNegotiation LeadStatus = "negotiation"
	LeadConverted   LeadStatus = "converted"
	LeadLost        LeadStatus = "lost"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// FilterAll disables a status or priority filter.
const FilterAll = "all"

// Assignee is the staff member a lead is assigned to. The backend returns
// either a bare id or a populated user document.
type Assignee struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (a *Assignee) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*a = Assignee{ID: id}
		return nil
	}
	type plain Assignee
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*a = Assignee(p)
	return nil
}

// Lead is a prospective or existing customer record owned by the backend.
type Lead struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company,omitempty"`
	Source       string     `json:"source,omitempty"`
	Status       LeadStatus `json:"status"`
	Priority     string     `json:"priority,omitempty"`
	DealValue    float64    `json:"dealValue"`
	AssignedTo   *Assignee  `json:"assignedTo,omitempty"`
	NextFollowUp *time.Time `json:"nextFollowUp,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
}

// LeadStats are the summary cards shown above the customer table.
type LeadStats struct {
	Total      int     `json:"total"`
	New        int     `json:"new"`
	Contacted  int     `json:"contacted"`
	Qualified  int     `json:"qualified"`
	TotalValue float64 `json:"total_value"`
}

// ComputeLeadStats aggregates the stat cards over leads.
func ComputeLeadStats(leads []Lead) LeadStats {
	stats := LeadStats{Total: len(leads)}
	for _, l := range leads {
		switch l.Status {
		case LeadNew:
			stats.New++
		case LeadContacted:
			stats.Contacted++
		case LeadQualified:
			stats.Qualified++
		}
		stats.TotalValue += l.DealValue
	}
	return stats
}
