package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shappycc2010-ctrl/HinGem/api/http/presenter"
	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
)

type AdminHandler struct {
	gate     *availability.Gate
	distress distress.UseCase
}

func NewAdminHandler(gate *availability.Gate, distress distress.UseCase) *AdminHandler {
	return &AdminHandler{gate: gate, distress: distress}
}

type shutdownRequest struct {
	Shutdown bool `json:"shutdown"`
}

// Shutdown toggles the server-side shutdown flag.
// @Summary Toggle shutdown
// @Tags    admin
// @Accept  json
// @Produce json
// @Param   input body shutdownRequest true "shutdown flag"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /api/admin/shutdown [post]
func (h *AdminHandler) Shutdown(c *fiber.Ctx) error {
	// decoded loosely: any JSON value is accepted and judged by truthiness
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return presenter.JSON(c, http.StatusBadRequest, fiber.Map{"ok": false, "error": "missing shutdown"})
	}
	v, ok := body["shutdown"]
	if !ok {
		return presenter.JSON(c, http.StatusBadRequest, fiber.Map{"ok": false, "error": "missing shutdown"})
	}
	active := !truthy(v)
	if err := h.gate.Set(c.UserContext(), active); err != nil {
		return presenter.JSON(c, http.StatusInternalServerError, fiber.Map{"ok": false, "error": "failed to update state"})
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"ok": true, "serverActive": active})
}

// Distress lists recorded distress signals, newest first.
// @Summary List distress signals
// @Tags    admin
// @Produce json
// @Param   limit  query int false "page size (1..200)"
// @Param   offset query int false "offset"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /api/admin/distress [get]
func (h *AdminHandler) Distress(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.distress.List(c.UserContext(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list distress signals")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}
