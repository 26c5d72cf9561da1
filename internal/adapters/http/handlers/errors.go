package handlers

import (
	"errors"
	"log"

	"opor-loyalty/internal/core/domain"
	"opor-loyalty/internal/pkg/response"
	"opor-loyalty/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// handleError maps service errors to responses
func handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrMemberNotFound):
		return response.NotFound(c, "Member not found")
	case errors.Is(err, domain.ErrBenefitNotFound):
		return response.NotFound(c, "Benefit not found")
	case errors.Is(err, domain.ErrComplaintNotFound):
		return response.NotFound(c, "Complaint not found")
	case errors.Is(err, domain.ErrInsufficientPoints):
		return response.UnprocessableEntity(c, "แต้มไม่พอสำหรับแลกสิทธิ์นี้")
	case errors.Is(err, domain.ErrBenefitExpired):
		return response.UnprocessableEntity(c, "สิทธิประโยชน์นี้หมดอายุแล้ว")
	case errors.Is(err, domain.ErrBenefitNotEligible):
		return response.UnprocessableEntity(c, "ระดับสมาชิกของคุณไม่สามารถใช้สิทธิ์นี้ได้")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	case errors.Is(err, domain.ErrStoreConflict):
		return response.Conflict(c, "Data was changed by another request, please retry")
	default:
		log.Printf("❌ %s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}

// errInvalidBody is returned for bodies that are not valid JSON
var errInvalidBody = errors.New("Invalid request body")

// parseBody decodes and validates a JSON request body.
// The returned error message is safe to show to the client.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errInvalidBody
	}
	return validate.Struct(req)
}
