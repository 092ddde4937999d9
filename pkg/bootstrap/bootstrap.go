// Package bootstrap opens the optional backing services shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/config"
	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
	"github.com/shappycc2010-ctrl/HinGem/pkg/health"
	"github.com/shappycc2010-ctrl/HinGem/pkg/health/checkers"
	"github.com/shappycc2010-ctrl/HinGem/pkg/llm/openai"
	"github.com/shappycc2010-ctrl/HinGem/pkg/repository/memory"
	pgrepo "github.com/shappycc2010-ctrl/HinGem/pkg/repository/postgres"
	"github.com/shappycc2010-ctrl/HinGem/pkg/storage/postgres"
)

// Backends holds what was opened; Close releases it.
type Backends struct {
	Distress distress.Repository
	Switch   availability.Switch
	Checkers []health.Checker

	pool *pgxpool.Pool
	rdb  *redis.Client
}

// Open connects to Postgres and Redis when configured and falls back to
// in-memory implementations otherwise. withSwitch is false for the relay.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger, withSwitch bool) (*Backends, error) {
	b := &Backends{}
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		b.pool = pool
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			b.Close()
			return nil, fmt.Errorf("postgres migrate: %w", err)
		}
		b.Distress = pgrepo.NewDistressRepository(pool)
		b.Checkers = append(b.Checkers, checkers.NewPostgresChecker(pool))
		log.Info("distress signals stored in postgres")
	} else {
		b.Distress = memory.NewDistressRepository()
		log.Warn("DATABASE_URL not set: distress signals kept in memory only")
	}

	if !withSwitch {
		return b, nil
	}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		b.rdb = redis.NewClient(opts)
		if err := b.rdb.Ping(ctx).Err(); err != nil {
			b.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		b.Switch = availability.NewRedisSwitch(b.rdb, availability.DefaultRedisKey)
		b.Checkers = append(b.Checkers, checkers.NewRedisChecker(b.rdb))
		log.Info("availability flag shared through redis")
	} else {
		b.Switch = availability.NewMemorySwitch()
	}
	return b, nil
}

func (b *Backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.rdb != nil {
		_ = b.rdb.Close()
	}
}

// OpenAIClient builds the fallback provider client.
func OpenAIClient(cfg config.Config) *openai.Client {
	return openai.New(openai.Options{
		Name:    "openai",
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
		Timeout: cfg.LLMTimeout,
	})
}

// GroqClient builds the cheap provider client, or nil when GROQ_API_KEY is unset.
func GroqClient(cfg config.Config) *openai.Client {
	if cfg.Groq.APIKey == "" {
		return nil
	}
	return openai.New(openai.Options{
		Name:              "groq",
		APIKey:            cfg.Groq.APIKey,
		BaseURL:           cfg.Groq.BaseURL,
		Model:             cfg.Groq.Model,
		Timeout:           cfg.LLMTimeout,
		Logprobs:          true,
		DefaultConfidence: cfg.GroqDefaultConfidence,
	})
}
