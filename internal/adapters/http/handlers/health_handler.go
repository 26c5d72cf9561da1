package handlers

import (
	"context"
	"time"

	"opor-loyalty/internal/adapters/persistence/kv"
	"opor-loyalty/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store kv.Store
	cfg   *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store kv.Store, cfg *config.Config) *HealthHandler {
	return &HealthHandler{store: store, cfg: cfg}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Opor Pochana Loyalty API v1.0 is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and store health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	storeStatus := "healthy"
	status := fiber.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		storeStatus = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":   "healthy",
			"store": storeStatus,
		},
		"backend": h.cfg.Store.Backend,
	})
}

// APIInfo handles API v1 info
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Opor Pochana Loyalty API v1.0",
		"version": "1.0.0",
	})
}
