package handlers

import (
	"errors"

	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/core/services"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// Login handles customer login by phone number
// @Summary Member login
// @Description Log in with a registered phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Phone number"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "ไม่พบเบอร์โทรศัพท์นี้ในระบบสมาชิก")
		}
		return handleError(c, err, "Login failed")
	}

	h.setAuthCookie(c, result.AccessToken)
	return response.Success(c, "Login successful", result)
}

// StaffLogin handles staff login by shared passphrase
// @Summary Staff login
// @Description Log in to the back office with the staff passphrase
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.StaffLoginInput true "Passphrase"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/staff [post]
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req services.StaffLoginInput
	if err := parseBody(c, &req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.authService.StaffLogin(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "รหัสผ่านไม่ถูกต้อง")
		}
		return handleError(c, err, "Login failed")
	}

	h.setAuthCookie(c, result.AccessToken)
	return response.Success(c, "Login successful", result)
}

// Logout clears the auth cookie
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearAuthCookie(c)
	return response.Success(c, "Logged out successfully", nil)
}

// setAuthCookie sets the access token cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, accessToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   h.cfg.JWT.AccessTokenMins * 60, // Convert minutes to seconds
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearAuthCookie clears the access token cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
