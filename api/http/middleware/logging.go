package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/pkg/telemetry"
)

// RequestLogger logs every request and feeds the HTTP collectors. m may be nil.
func RequestLogger(log *zap.Logger, m *telemetry.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the app error handler pick the status before we read it
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		took := time.Since(start)
		route := c.Route().Path

		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", status),
			zap.Duration("latency", took),
			zap.String("ip", c.IP()),
		)
		if m != nil {
			m.HTTPRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(route, c.Method()).Observe(took.Seconds())
		}
		return nil
	}
}
