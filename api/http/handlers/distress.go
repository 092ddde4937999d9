package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/shappycc2010-ctrl/HinGem/api/http/presenter"
	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
)

type DistressHandler struct {
	uc distress.UseCase
}

func NewDistressHandler(uc distress.UseCase) *DistressHandler { return &DistressHandler{uc: uc} }

// Record stores a distress signal. Any JSON body is accepted.
// @Summary Send a distress signal
// @Tags    distress
// @Accept  json
// @Produce json
// @Param   input body object false "arbitrary payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /api/distress [post]
func (h *DistressHandler) Record(c *fiber.Ctx) error {
	// Body and headers are fasthttp buffers reused after the handler returns.
	sig, err := h.uc.Record(c.UserContext(), bytes.Clone(c.Body()), distress.Meta{
		RemoteAddr: c.IP(),
		UserAgent:  utils.CopyString(c.Get(fiber.HeaderUserAgent)),
	})
	if err != nil {
		if errors.Is(err, distress.ErrInvalidPayload) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to record distress signal")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"status": "Distress signal received",
		"id":     sig.ID.String(),
	})
}
