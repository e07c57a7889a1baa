package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/core/ports"
)

const recentLeadsLimit = 5

// DashboardHandler aggregates the landing screen from the lead and team lists.
type DashboardHandler struct {
	leads ports.LeadService
	staff ports.StaffService
}

func NewDashboardHandler(leads ports.LeadService, staff ports.StaffService) *DashboardHandler {
	return &DashboardHandler{leads: leads, staff: staff}
}

// Show handles GET /admin/dashboard.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	leads, err := h.leads.List(ctx, ports.ListLeadsInput{})
	if err != nil {
		return err
	}
	team, err := h.staff.List(ctx, ports.ListStaffInput{})
	if err != nil {
		return err
	}

	recent := append(leads.Items[:0:0], leads.Items...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLeadsLimit {
		recent = recent[:recentLeadsLimit]
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Operator:    user,
		Leads:       leads.Stats,
		TeamTotal:   team.Total,
		TeamActive:  team.Active,
		RecentLeads: recent,
	})
}
