package distress

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Signal is one received distress call. Payload is stored verbatim.
type Signal struct {
	ID         uuid.UUID       `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	RemoteAddr string          `json:"remoteAddr"`
	UserAgent  string          `json:"userAgent"`
	ReceivedAt time.Time       `json:"receivedAt"`
}

// Meta describes the request a signal arrived with.
type Meta struct {
	RemoteAddr string
	UserAgent  string
}

// Repository persists signals, newest first on List.
type Repository interface {
	Create(ctx context.Context, s Signal) error
	List(ctx context.Context, limit, offset int) ([]Signal, error)
}
