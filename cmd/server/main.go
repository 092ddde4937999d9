// @title         Hingem API
// @version       1.0
// @description   Chat backend for the Hingem assistant: provider fallback, shutdown gate, news and prediction stubs, distress signals.
// @BasePath      /
// @schemes       http
// @host          localhost:4000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Admin token. Both "Bearer <JWT>" and "<JWT>" are accepted.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/api/http"
	"github.com/shappycc2010-ctrl/HinGem/api/http/handlers"
	"github.com/shappycc2010-ctrl/HinGem/docs"
	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/bootstrap"
	"github.com/shappycc2010-ctrl/HinGem/pkg/chat"
	"github.com/shappycc2010-ctrl/HinGem/pkg/config"
	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
	"github.com/shappycc2010-ctrl/HinGem/pkg/health"
	"github.com/shappycc2010-ctrl/HinGem/pkg/news"
	"github.com/shappycc2010-ctrl/HinGem/pkg/predict"
	"github.com/shappycc2010-ctrl/HinGem/pkg/security/jwt"
	"github.com/shappycc2010-ctrl/HinGem/pkg/telemetry"
)

func main() {
	// Load configuration from env/.env
	cfg := config.Load("4000", config.DefaultHingemPrompt)

	logger, err := telemetry.NewLogger(cfg.Production(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, "hingem-server", cfg.AppEnv)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	metrics := telemetry.NewMetrics("hingem")

	backends, err := bootstrap.Open(ctx, cfg, logger, true)
	if err != nil {
		logger.Fatal("open backends", zap.Error(err))
	}
	defer backends.Close()

	// Shutdown gate
	token := availability.NewToken(cfg.ShutdownToken, cfg.ShutdownTokenHash)
	if !token.Enabled() {
		logger.Warn("no SHUTDOWN_TOKEN or SHUTDOWN_TOKEN_HASH: chat cannot toggle the server")
	}
	gate := availability.NewGate(backends.Switch, token, logger)
	gate.OnChange(metrics.Toggled)
	metrics.TrackAvailability(func() bool {
		readCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		active, err := backends.Switch.Active(readCtx)
		// unreadable flag: the gate lets chat through, report the same
		return err != nil || active
	})

	// Providers: Groq first when configured, OpenAI as fallback
	chatOpts := chat.Options{
		Threshold:    cfg.GroqThreshold,
		Fallback:     bootstrap.OpenAIClient(cfg),
		SystemPrompt: cfg.SystemPrompt,
		Placeholders: true,
		Logger:       logger,
		Metrics:      metrics,
	}
	if groq := bootstrap.GroqClient(cfg); groq != nil {
		chatOpts.Primary = groq
	}
	chatUC := chat.NewService(chatOpts)
	distressUC := distress.NewService(backends.Distress, logger, metrics.DistressSignals.Inc)

	var adminAuth []fiber.Handler
	if cfg.AdminJWTSecret != "" {
		adminAuth = []fiber.Handler{jwt.NewAuthMiddleware(cfg.AdminJWTSecret, cfg.AdminJWTIssuer), jwt.RequireAdmin}
	} else {
		logger.Warn("ADMIN_JWT_SECRET not set: admin routes are unauthenticated")
	}

	app := http.NewApp("hingem", logger, metrics)
	http.Register(app, http.ServerHandlers{
		Chat:      handlers.NewChatHandler(chatUC, gate, logger),
		News:      handlers.NewNewsHandler(news.NewStatic(), predict.NewStub()),
		Admin:     handlers.NewAdminHandler(gate, distressUC),
		Distress:  handlers.NewDistressHandler(distressUC),
		Health:    handlers.NewHealthHandler(health.NewService(backends.Checkers...), backends.Switch),
		AdminAuth: adminAuth,
	}, metrics.Registry)

	// Swagger UI
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	logger.Info("Hingem backend listening", zap.String("port", cfg.Port))
	if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logger.Warn("tracer shutdown", zap.Error(err))
	}
}
