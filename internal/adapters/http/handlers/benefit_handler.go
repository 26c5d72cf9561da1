package handlers

import (
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BenefitHandler handles staff benefit catalogue endpoints
type BenefitHandler struct {
	benefitService *services.BenefitService
}

// NewBenefitHandler creates a new benefit handler
func NewBenefitHandler(benefitService *services.BenefitService) *BenefitHandler {
	return &BenefitHandler{benefitService: benefitService}
}

// ListBenefits returns the whole catalogue
// @Summary List benefits
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/benefits [get]
func (h *BenefitHandler) ListBenefits(c *fiber.Ctx) error {
	benefits, err := h.benefitService.ListBenefits(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to list benefits")
	}
	return response.Success(c, "Benefits retrieved successfully", benefits)
}

// ReplaceBenefits replaces the whole catalogue
// @Summary Replace benefits
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []domain.Benefit true "Benefits"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/benefits [put]
func (h *BenefitHandler) ReplaceBenefits(c *fiber.Ctx) error {
	var req []domain.Benefit
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.benefitService.SaveBenefits(c.Context(), req); err != nil {
		return handleError(c, err, "Failed to save benefits")
	}
	return response.Success(c, "Benefits saved successfully", req)
}

// CreateBenefit adds a benefit
// @Summary Create benefit
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BenefitInput true "Benefit"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/benefits [post]
func (h *BenefitHandler) CreateBenefit(c *fiber.Ctx) error {
	var req services.BenefitInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	benefit, err := h.benefitService.CreateBenefit(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to create benefit")
	}
	return response.Created(c, "Benefit created successfully", benefit)
}

// UpdateBenefit edits a benefit in place
// @Summary Update benefit
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Benefit ID"
// @Param body body services.BenefitInput true "Benefit"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/benefits/{id} [put]
func (h *BenefitHandler) UpdateBenefit(c *fiber.Ctx) error {
	var req services.BenefitInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	benefit, err := h.benefitService.UpdateBenefit(c.Context(), c.Params("id"), &req)
	if err != nil {
		return handleError(c, err, "Failed to update benefit")
	}
	return response.Success(c, "Benefit updated successfully", benefit)
}

// DeleteBenefit removes a benefit
// @Summary Delete benefit
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Benefit ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/benefits/{id} [delete]
func (h *BenefitHandler) DeleteBenefit(c *fiber.Ctx) error {
	if err := h.benefitService.DeleteBenefit(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err, "Failed to delete benefit")
	}
	return response.Success(c, "Benefit deleted successfully", nil)
}
