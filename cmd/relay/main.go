package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/api/http"
	"github.com/shappycc2010-ctrl/HinGem/api/http/handlers"
	"github.com/shappycc2010-ctrl/HinGem/pkg/bootstrap"
	"github.com/shappycc2010-ctrl/HinGem/pkg/chat"
	"github.com/shappycc2010-ctrl/HinGem/pkg/config"
	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
	"github.com/shappycc2010-ctrl/HinGem/pkg/health"
	"github.com/shappycc2010-ctrl/HinGem/pkg/telemetry"
)

// relay is the single-provider assistant: POST /chat and POST /distress.
func main() {
	cfg := config.Load("3000", config.DefaultRelayPrompt)

	logger, err := telemetry.NewLogger(cfg.Production(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, "hingem-relay", cfg.AppEnv)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	metrics := telemetry.NewMetrics("relay")

	backends, err := bootstrap.Open(ctx, cfg, logger, false)
	if err != nil {
		logger.Fatal("open backends", zap.Error(err))
	}
	defer backends.Close()

	chatUC := chat.NewService(chat.Options{
		Fallback:     bootstrap.OpenAIClient(cfg),
		SystemPrompt: cfg.SystemPrompt,
		Logger:       logger,
		Metrics:      metrics,
	})
	distressUC := distress.NewService(backends.Distress, logger, metrics.DistressSignals.Inc)

	app := http.NewApp("hingem-relay", logger, metrics)
	http.RegisterRelay(app,
		handlers.NewChatHandler(chatUC, nil, logger),
		handlers.NewDistressHandler(distressUC),
		handlers.NewHealthHandler(health.NewService(backends.Checkers...), nil),
		metrics.Registry,
	)

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logger.Info("Server running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = shutdownTracing(flushCtx)
}
