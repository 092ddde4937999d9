package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/health"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	svc health.ReadinessUseCase
	sw  availability.Switch
}

// NewHealthHandler; sw may be nil when the service has no shutdown flag.
func NewHealthHandler(svc health.ReadinessUseCase, sw availability.Switch) *HealthHandler {
	return &HealthHandler{svc: svc, sw: sw}
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.sw == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	}
	active, err := h.sw.Active(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "serverActive": nil, "details": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "serverActive": active})
}

// Ready: readiness check with dependency pings.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 1*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "not_ready",
			"details": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
