package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shappycc2010-ctrl/HinGem/api/http/handlers"
)

// ServerHandlers are the handlers mounted by the hingem server.
type ServerHandlers struct {
	Chat     *handlers.ChatHandler
	News     *handlers.NewsHandler
	Admin    *handlers.AdminHandler
	Distress *handlers.DistressHandler
	Health   *handlers.HealthHandler
	// AdminAuth guards /api/admin; nil leaves it open.
	AdminAuth []fiber.Handler
}

// Register wires the hingem server routes onto the given Fiber app.
func Register(app *fiber.App, h ServerHandlers, gatherer prometheus.Gatherer) {
	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)
	app.Get("/metrics", metricsHandler(gatherer))

	api := app.Group("/api")
	api.Post("/chat", h.Chat.Chat)
	api.Get("/news", h.News.News)
	api.Post("/predict", h.News.Predict)
	api.Post("/distress", h.Distress.Record)

	admin := api.Group("/admin", h.AdminAuth...)
	admin.Post("/shutdown", h.Admin.Shutdown)
	admin.Get("/distress", h.Admin.Distress)
}

// RegisterRelay wires the relay routes.
func RegisterRelay(app *fiber.App, chat *handlers.ChatHandler, distress *handlers.DistressHandler, health *handlers.HealthHandler, gatherer prometheus.Gatherer) {
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
	app.Get("/metrics", metricsHandler(gatherer))

	app.Post("/chat", chat.Relay)
	app.Post("/distress", distress.Record)
}

func metricsHandler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
