package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// NoCacheHeaders sets no-cache headers (balances and history must never be stale)
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}

// PrivateCacheHeaders sets private cache headers on successful GETs (for member-specific data)
func PrivateCacheHeaders(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == fiber.MethodGet && c.Response().StatusCode() == fiber.StatusOK {
			c.Set("Cache-Control", "private, max-age="+strconv.Itoa(int(maxAge.Seconds())))
			c.Response().Header.Del("Pragma")
			c.Response().Header.Del("Expires")
		}

		return err
	}
}
