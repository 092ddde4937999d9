package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/api/http/middleware"
	"github.com/shappycc2010-ctrl/HinGem/api/http/presenter"
	"github.com/shappycc2010-ctrl/HinGem/pkg/telemetry"
)

// NewApp creates a Fiber app with the middleware stack shared by both services.
func NewApp(name string, log *zap.Logger, m *telemetry.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			} else {
				log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return presenter.Error(c, code, statusText(fe))
		},
	})
	app.Use(recover.New())
	// allow all origins, the web client is served from elsewhere
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(log, m))
	return app
}

func statusText(fe *fiber.Error) string {
	if fe != nil {
		return fe.Message
	}
	return "internal error"
}
