package handlers

import (
	"opor-loyalty/internal/adapters/http/middleware"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles the customer's own endpoints
type MemberHandler struct {
	memberService    *services.MemberService
	benefitService   *services.BenefitService
	complaintService *services.ComplaintService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
	memberService *services.MemberService,
	benefitService *services.BenefitService,
	complaintService *services.ComplaintService,
) *MemberHandler {
	return &MemberHandler{
		memberService:    memberService,
		benefitService:   benefitService,
		complaintService: complaintService,
	}
}

// HistoryResponse is the member's point history
type HistoryResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Used         []domain.Transaction `json:"used"`
}

// Profile returns the logged-in member
// @Summary My profile
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /me [get]
func (h *MemberHandler) Profile(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to get profile")
	}
	return response.Success(c, "Profile retrieved successfully", member)
}

// Benefits returns the member's benefit screen
// @Summary My benefits
// @Description Eligible benefits split into available and expired, each with a redeemable flag
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /me/benefits [get]
func (h *MemberHandler) Benefits(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to get benefits")
	}

	view, err := h.benefitService.CustomerView(c.Context(), member)
	if err != nil {
		return handleError(c, err, "Failed to get benefits")
	}
	return response.Success(c, "Benefits retrieved successfully", view)
}

// Redeem redeems one benefit for the member
// @Summary Redeem benefit
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Param id path string true "Benefit ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /me/benefits/{id}/redeem [post]
func (h *MemberHandler) Redeem(c *fiber.Ctx) error {
	member, err := h.memberService.RedeemForMember(c.Context(), middleware.MemberID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to redeem benefit")
	}
	return response.Success(c, "แลกสิทธิ์สำเร็จ", member)
}

// History returns the member's transactions and spending history
// @Summary My point history
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /me/history [get]
func (h *MemberHandler) History(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to get history")
	}
	return response.Success(c, "History retrieved successfully", HistoryResponse{
		Transactions: member.Transactions,
		Used:         domain.UsedHistory(*member),
	})
}

// Complaints returns the member's own complaints
// @Summary My complaints
// @Tags Member
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /me/complaints [get]
func (h *MemberHandler) Complaints(c *fiber.Ctx) error {
	complaints, err := h.complaintService.ListByMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to get complaints")
	}
	return response.Success(c, "Complaints retrieved successfully", complaints)
}

// SubmitComplaint files a complaint for the member
// @Summary Submit complaint
// @Tags Member
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitComplaintInput true "Complaint"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /me/complaints [post]
func (h *MemberHandler) SubmitComplaint(c *fiber.Ctx) error {
	var req services.SubmitComplaintInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.GetMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to submit complaint")
	}
	req.MemberID = member.ID
	req.MemberName = member.Name
	req.MemberPhone = member.PhoneNumber

	complaint, err := h.complaintService.SubmitComplaint(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to submit complaint")
	}
	return response.Created(c, "ส่งเรื่องร้องเรียนเรียบร้อย", complaint)
}
