package distress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidPayload = errors.New("payload must be valid JSON")

type UseCase interface {
	Record(ctx context.Context, payload []byte, meta Meta) (Signal, error)
	List(ctx context.Context, limit, offset int) ([]Signal, error)
}

type service struct {
	repo     Repository
	log      *zap.Logger
	received func()
}

// NewService returns the default UseCase. received, if set, is called once per stored signal.
func NewService(repo Repository, log *zap.Logger, received func()) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, log: log, received: received}
}

func (s *service) Record(ctx context.Context, payload []byte, meta Meta) (Signal, error) {
	payload = bytes.Clone(bytes.TrimSpace(payload))
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	if !json.Valid(payload) {
		return Signal{}, ErrInvalidPayload
	}
	sig := Signal{
		ID:         uuid.New(),
		Payload:    json.RawMessage(payload),
		RemoteAddr: meta.RemoteAddr,
		UserAgent:  meta.UserAgent,
		ReceivedAt: time.Now().UTC(),
	}
	s.log.Warn("DISTRESS SIGNAL RECEIVED",
		zap.String("id", sig.ID.String()),
		zap.String("remoteAddr", sig.RemoteAddr),
		zap.ByteString("payload", payload))
	if err := s.repo.Create(ctx, sig); err != nil {
		return Signal{}, fmt.Errorf("store distress signal: %w", err)
	}
	if s.received != nil {
		s.received()
	}
	return sig, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Signal, error) {
	return s.repo.List(ctx, limit, offset)
}
