package handlers

import (
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetStaffDashboard returns staff dashboard data
// @Summary Staff Dashboard
// @Description Member, catalogue and complaint overview (Staff only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetStaffDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetStaffDashboard(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to get staff dashboard")
	}

	return response.Success(c, "Staff dashboard retrieved successfully", data)
}
