package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shappycc2010-ctrl/HinGem/api/http/presenter"
	"github.com/shappycc2010-ctrl/HinGem/pkg/news"
	"github.com/shappycc2010-ctrl/HinGem/pkg/predict"
)

type NewsHandler struct {
	news    news.UseCase
	predict predict.UseCase
}

func NewNewsHandler(n news.UseCase, p predict.UseCase) *NewsHandler {
	return &NewsHandler{news: n, predict: p}
}

// News
// @Summary Latest news
// @Tags    news
// @Produce json
// @Success 200 {object} map[string][]news.Article
// @Router  /api/news [get]
func (h *NewsHandler) News(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"articles": h.news.Latest(c.UserContext())})
}

// Predict
// @Summary Match outcome prediction
// @Tags    news
// @Accept  json
// @Produce json
// @Param   input body predict.Match false "teams"
// @Success 200 {object} predict.Prediction
// @Router  /api/predict [post]
func (h *NewsHandler) Predict(c *fiber.Ctx) error {
	var m predict.Match
	// the body is optional; a bad one predicts the same as none
	_ = c.BodyParser(&m)
	return presenter.JSON(c, http.StatusOK, h.predict.Predict(c.UserContext(), m))
}
