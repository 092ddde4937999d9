package memory

import (
	"context"
	"sync"

	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
)

// DistressRepository keeps signals in process memory.
// Used when no DATABASE_URL is configured.
type DistressRepository struct {
	mu      sync.RWMutex
	signals []distress.Signal
}

func NewDistressRepository() *DistressRepository { return &DistressRepository{} }

func (r *DistressRepository) Create(_ context.Context, s distress.Signal) error {
	r.mu.Lock()
	r.signals = append(r.signals, s)
	r.mu.Unlock()
	return nil
}

func (r *DistressRepository) List(_ context.Context, limit, offset int) ([]distress.Signal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []distress.Signal{}
	// newest first
	for i := len(r.signals) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.signals[i])
	}
	return out, nil
}
