package availability

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Switch holds the process-wide "server active" flag.
type Switch interface {
	Active(ctx context.Context) (bool, error)
	SetActive(ctx context.Context, active bool) error
}

// MemorySwitch keeps the flag in process memory. The zero value is inactive;
// use NewMemorySwitch for a switch that starts active.
type MemorySwitch struct {
	active atomic.Bool
}

func NewMemorySwitch() *MemorySwitch {
	s := &MemorySwitch{}
	s.active.Store(true)
	return s
}

func (s *MemorySwitch) Active(context.Context) (bool, error) { return s.active.Load(), nil }

func (s *MemorySwitch) SetActive(_ context.Context, active bool) error {
	s.active.Store(active)
	return nil
}

// DefaultRedisKey is where RedisSwitch stores the flag.
const DefaultRedisKey = "hingem:server_active"

// RedisSwitch shares the flag between replicas. A missing key reads as active.
type RedisSwitch struct {
	rdb *redis.Client
	key string
}

func NewRedisSwitch(rdb *redis.Client, key string) *RedisSwitch {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSwitch{rdb: rdb, key: key}
}

func (s *RedisSwitch) Active(ctx context.Context) (bool, error) {
	v, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read availability flag: %w", err)
	}
	return v != "0", nil
}

func (s *RedisSwitch) SetActive(ctx context.Context, active bool) error {
	v := "0"
	if active {
		v = "1"
	}
	if err := s.rdb.Set(ctx, s.key, v, 0).Err(); err != nil {
		return fmt.Errorf("write availability flag: %w", err)
	}
	return nil
}
