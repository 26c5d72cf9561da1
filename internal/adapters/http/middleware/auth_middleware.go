package middleware

import (
	"errors"
	"strings"

	"opor-loyalty/internal/config"
	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/jwt"
	"opor-loyalty/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalMemberID = "memberID"
	LocalPhone    = "phone"
	LocalRole     = "role"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Try to get token from cookie first
		accessToken := c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set caller info in context
		c.Locals(LocalMemberID, claims.MemberID)
		c.Locals(LocalPhone, claims.Phone)
		c.Locals(LocalRole, claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// StaffOnly middleware allows only STAFF role
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleStaff)
}

// MemberOnly middleware allows only MEMBER tokens that carry a member id
func MemberOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if role != string(domain.RoleMember) || MemberID(c) == "" {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
		return c.Next()
	}
}

// MemberID returns the authenticated member id
func MemberID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalMemberID).(string)
	return id
}
