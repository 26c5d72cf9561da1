package handlers

import (
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ComplaintHandler handles staff complaint triage endpoints
type ComplaintHandler struct {
	complaintService *services.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

// ListComplaints returns every complaint, newest first
// @Summary List complaints
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/complaints [get]
func (h *ComplaintHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.complaintService.ListComplaints(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to list complaints")
	}
	return response.Success(c, "Complaints retrieved successfully", complaints)
}

// ResolveComplaint marks a complaint resolved
// @Summary Resolve complaint
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/complaints/{id}/resolve [put]
func (h *ComplaintHandler) ResolveComplaint(c *fiber.Ctx) error {
	complaint, err := h.complaintService.ResolveComplaint(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to resolve complaint")
	}
	return response.Success(c, "Complaint resolved", complaint)
}
