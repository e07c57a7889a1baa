package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/admin-console/internal/core/ports"
)

// LeadImporter is the interface the handler uses to run bulk imports.
type LeadImporter interface {
	Import(ctx context.Context, inputs []ports.LeadInput) ([]ports.ImportResult, error)
}

// LeadHandler serves the customer screens.
type LeadHandler struct {
	service  ports.LeadService
	importer LeadImporter
}

func NewLeadHandler(service ports.LeadService, importer LeadImporter) *LeadHandler {
	return &LeadHandler{service: service, importer: importer}
}

// List handles GET /admin/customers.
//
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        search    query     string  false  "Substring of name, email or company"
// @Param        status    query     string  false  "Lead status or all"
// @Param        priority  query     string  false  "Priority or all"
// @Success      200       {object}  leadListResponse
// @Failure      502       {object}  errorResponse
// @Failure      503       {object}  errorResponse
// @Router       /admin/customers [get]
func (h *LeadHandler) List(c echo.Context) error {
	result, err := h.service.List(c.Request().Context(), ports.ListLeadsInput{
		Search:   c.QueryParam("search"),
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leadListResponse{Items: result.Items, Stats: result.Stats})
}

// Get handles GET /admin/customers/:id.
//
// @Summary      Get a customer
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Lead id"
// @Success      200  {object}  leadResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/customers/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	lead, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leadResponse{Lead: lead})
}

// Create handles POST /admin/customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      leadRequest  true  "Customer"
// @Success      201   {object}  leadResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/customers [post]
func (h *LeadHandler) Create(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lead, err := h.service.Create(c.Request().Context(), toLeadInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, leadResponse{Lead: lead})
}

// Update handles PUT /admin/customers/:id.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Lead id"
// @Param        body  body      leadRequest  true  "Customer"
// @Success      200   {object}  leadResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/customers/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	var req leadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	lead, err := h.service.Update(c.Request().Context(), c.Param("id"), toLeadInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leadResponse{Lead: lead})
}

// Delete handles DELETE /admin/customers/:id.
//
// @Summary      Delete a customer
// @Tags         customers
// @Param        id   path  string  true  "Lead id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /admin/customers/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Import handles POST /admin/customers/import and reports one result per row.
//
// @Summary      Bulk import customers
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      []leadRequest  true  "Customers"
// @Success      200   {object}  importResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/customers/import [post]
func (h *LeadHandler) Import(c echo.Context) error {
	var reqs []leadRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.LeadInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("row[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toLeadInput(req))
	}

	results, err := h.importer.Import(c.Request().Context(), inputs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toImportResponse(results))
}

// Assignees handles GET /admin/customers/assignees.
//
// @Summary      Users a customer can be assigned to
// @Tags         customers
// @Produce      json
// @Success      200  {object}  assigneesResponse
// @Router       /admin/customers/assignees [get]
func (h *LeadHandler) Assignees(c echo.Context) error {
	users, err := h.service.Assignees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assigneesResponse{Items: users})
}
