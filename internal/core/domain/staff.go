package domain

import "time"

// StaffMember is a team account managed from the console.
type StaffMember struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Status renders the active flag the way the team screen filters on it.
func (m StaffMember) Status() string {
	if m.IsActive {
		return "active"
	}
	return "inactive"
}
