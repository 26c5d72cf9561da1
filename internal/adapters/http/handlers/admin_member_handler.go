package handlers

import (
	"strings"

	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/pagination"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminMemberHandler handles staff member management endpoints
type AdminMemberHandler struct {
	memberService *services.MemberService
}

// NewAdminMemberHandler creates a new admin member handler
func NewAdminMemberHandler(memberService *services.MemberService) *AdminMemberHandler {
	return &AdminMemberHandler{memberService: memberService}
}

// UpdateMemberRequest represents a staff edit of a member record
type UpdateMemberRequest struct {
	Name        string      `json:"name" validate:"required,max=100"`
	PhoneNumber string      `json:"phoneNumber" validate:"required,max=20"`
	Tier        domain.Tier `json:"tier" validate:"required,oneof=Silver Gold"`
	Points      *int        `json:"points"`
}

// AddPointsRequest represents a point top-up
type AddPointsRequest struct {
	Amount      *int   `json:"amount" validate:"required"`
	Description string `json:"description" validate:"max=200"`
}

// ListMembers returns the filtered, sorted roster
// @Summary List members
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or phone substring"
// @Param tier query string false "ALL, Silver or Gold"
// @Param sort query string false "NONE, ASC or DESC (points)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/members [get]
func (h *AdminMemberHandler) ListMembers(c *fiber.Ctx) error {
	sort := domain.PointsSort(strings.ToUpper(c.Query("sort", string(domain.SortDesc))))
	switch sort {
	case domain.SortNone, domain.SortAsc, domain.SortDesc:
	default:
		return response.BadRequest(c, "sort must be one of: NONE ASC DESC")
	}

	tier := domain.Tier(c.Query("tier", "ALL"))
	if tier != "ALL" && !tier.Valid() {
		return response.BadRequest(c, "tier must be one of: ALL Silver Gold")
	}

	query := domain.RosterQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Tier:   tier,
		Sort:   sort,
	}

	params := pagination.GetParams(c)
	out, err := h.memberService.Roster(c.Context(), query, params)
	if err != nil {
		return handleError(c, err, "Failed to list members")
	}
	return response.Success(c, "Members retrieved successfully", out)
}

// GetMember returns one member
// @Summary Get member
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [get]
func (h *AdminMemberHandler) GetMember(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get member")
	}
	return response.Success(c, "Member retrieved successfully", member)
}

// CreateMember registers a new member
// @Summary Register member
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMemberInput true "Member"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/members [post]
func (h *AdminMemberHandler) CreateMember(c *fiber.Ctx) error {
	var req services.CreateMemberInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.CreateMember(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to create member")
	}
	return response.Created(c, "สมัครสมาชิกเรียบร้อย", member)
}

// UpdateMember edits a member's profile fields, keeping its history
// @Summary Update member
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param body body UpdateMemberRequest true "Member"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id} [put]
func (h *AdminMemberHandler) UpdateMember(c *fiber.Ctx) error {
	var req UpdateMemberRequest
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.EditMember(c.Context(), c.Params("id"), func(m *domain.Member) error {
		m.Name = strings.TrimSpace(req.Name)
		m.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
		m.Tier = req.Tier
		if req.Points != nil {
			m.Points = *req.Points
		}
		return nil
	})
	if err != nil {
		return handleError(c, err, "Failed to update member")
	}
	return response.Success(c, "Member updated successfully", member)
}

// AddPoints tops up (or corrects) a member's balance
// @Summary Add points
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param body body AddPointsRequest true "Points"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/members/{id}/points [post]
func (h *AdminMemberHandler) AddPoints(c *fiber.Ctx) error {
	var req AddPointsRequest
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.AddPoints(c.Context(), c.Params("id"), *req.Amount, req.Description)
	if err != nil {
		return handleError(c, err, "Failed to add points")
	}
	return response.Success(c, "เพิ่มแต้มเรียบร้อย", member)
}
