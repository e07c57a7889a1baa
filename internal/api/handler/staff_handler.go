package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/core/ports"
)

// StaffHandler serves team management.
type StaffHandler struct {
	service ports.StaffService
}

func NewStaffHandler(service ports.StaffService) *StaffHandler {
	return &StaffHandler{service: service}
}

// List handles GET /admin/team.
//
// @Summary      List team members
// @Tags         team
// @Produce      json
// @Param        search  query     string  false  "Substring of name or email"
// @Param        status  query     string  false  "active, inactive or all"
// @Success      200     {object}  staffListResponse
// @Router       /admin/team [get]
func (h *StaffHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), ports.ListStaffInput{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staffListResponse{
		Items:    result.Items,
		Total:    result.Total,
		Active:   result.Active,
		Inactive: result.Inactive,
	})
}

// Register handles POST /admin/staff.
//
// @Summary      Create a team member
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        body  body      staffRequest  true  "Team member"
// @Success      201   {object}  staffResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/staff [post]
func (h *StaffHandler) Register(c echo.Context) error {
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := h.service.Register(c.Request().Context(),
		toStaffInput(req.Name, req.Email, req.Password, req.Role, req.IsActive))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, staffResponse{Member: member})
}

// Update handles PUT /admin/staff/:id.
//
// @Summary      Edit a team member
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "User id"
// @Param        body  body      staffUpdateRequest  true  "Team member"
// @Success      200   {object}  staffResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/staff/{id} [put]
func (h *StaffHandler) Update(c echo.Context) error {
	var req staffUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	member, err := h.service.Update(c.Request().Context(), c.Param("id"),
		toStaffInput(req.Name, req.Email, req.Password, req.Role, req.IsActive))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, staffResponse{Member: member})
}
