package handler

import (
	"time"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginView struct {
	View     string `json:"view"`
	Redirect string `json:"redirect,omitempty"`
}

type profileResponse struct {
	User *domain.User `json:"user"`
}

// --- Customers ---

type leadRequest struct {
	Name         string     `json:"name"         validate:"required"`
	Email        string     `json:"email"        validate:"required,email"`
	Phone        string     `json:"phone"        validate:"required,phone"`
	Company      string     `json:"company"`
	Source       string     `json:"source"       validate:"omitempty,oneof=website referral social_media email_campaign cold_call event other"`
	Status       string     `json:"status"       validate:"omitempty,oneof=new contacted qualified proposal negotiation converted lost"`
	Priority     string     `json:"priority"     validate:"omitempty,oneof=low medium high urgent"`
	DealValue    float64    `json:"dealValue"    validate:"gte=0"`
	AssignedTo   string     `json:"assignedTo"   validate:"required"`
	NextFollowUp *time.Time `json:"nextFollowUp"`
}

type leadListResponse struct {
	Items []domain.Lead    `json:"items"`
	Stats domain.LeadStats `json:"stats"`
}

type leadResponse struct {
	Lead *domain.Lead `json:"lead"`
}

type importItemResponse struct {
	Index int          `json:"index"`
	Email string       `json:"email"`
	Lead  *domain.Lead `json:"lead,omitempty"`
	Error string       `json:"error,omitempty"`
}

type importResponse struct {
	Created int                  `json:"created"`
	Failed  int                  `json:"failed"`
	Items   []importItemResponse `json:"items"`
}

type assigneesResponse struct {
	Items []domain.StaffMember `json:"items"`
}

// --- Team ---

type staffRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role"            validate:"required,oneof=owner manager sales designer admin"`
	IsActive        *bool  `json:"isActive"`
}

// staffUpdateRequest leaves the password optional; when given it follows the
// same rules as on registration.
type staffUpdateRequest struct {
	Name            string `json:"name"            validate:"required"`
	Email           string `json:"email"           validate:"required,email"`
	Password        string `json:"password"        validate:"omitempty,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
	Role            string `json:"role"            validate:"required,oneof=owner manager sales designer admin"`
	IsActive        *bool  `json:"isActive"`
}

type staffListResponse struct {
	Items    []domain.StaffMember `json:"items"`
	Total    int                  `json:"total"`
	Active   int                  `json:"active"`
	Inactive int                  `json:"inactive"`
}

type staffResponse struct {
	Member *domain.StaffMember `json:"member"`
}

// --- Dashboard ---

type dashboardResponse struct {
	Operator    *domain.User     `json:"operator"`
	Leads       domain.LeadStats `json:"leads"`
	TeamTotal   int              `json:"team_total"`
	TeamActive  int              `json:"team_active"`
	RecentLeads []domain.Lead    `json:"recent_leads"`
}
