package handlers

import (
	"opor-loyalty/internal/adapters/http/middleware"
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChefHandler handles the chef chat endpoints
type ChefHandler struct {
	chefService   *services.ChefService
	memberService *services.MemberService
}

// NewChefHandler creates a new chef handler
func NewChefHandler(chefService *services.ChefService, memberService *services.MemberService) *ChefHandler {
	return &ChefHandler{
		chefService:   chefService,
		memberService: memberService,
	}
}

// ChatRequest represents a chat message
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// Greeting returns the chef's greeting for the member
// @Summary Chef greeting
// @Tags Chef
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /me/chef/greeting [get]
func (h *ChefHandler) Greeting(c *fiber.Ctx) error {
	member, err := h.memberService.GetMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to get greeting")
	}

	text := h.chefService.Greeting(c.Context(), member.Tier, member.Points, member.Name)
	return response.Success(c, "", fiber.Map{"text": text})
}

// Chat answers one message from the member
// @Summary Chat with the chef
// @Tags Chef
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChatRequest true "Message"
// @Success 200 {object} response.Response
// @Router /me/chef/chat [post]
func (h *ChefHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	member, err := h.memberService.GetMember(c.Context(), middleware.MemberID(c))
	if err != nil {
		return handleError(c, err, "Failed to chat")
	}

	text := h.chefService.Reply(c.Context(), req.Message, member.Tier, member.Name)
	return response.Success(c, "", fiber.Map{"text": text})
}
