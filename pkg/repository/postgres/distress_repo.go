package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shappycc2010-ctrl/HinGem/pkg/distress"
)

// DistressRepository stores distress signals in PostgreSQL.
// The schema is owned by the goose migrations in pkg/storage/postgres.
type DistressRepository struct {
	pool *pgxpool.Pool
}

func NewDistressRepository(pool *pgxpool.Pool) *DistressRepository {
	return &DistressRepository{pool: pool}
}

func (r *DistressRepository) Create(ctx context.Context, s distress.Signal) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO distress_signals (id, payload, remote_addr, user_agent, received_at)
VALUES ($1, $2, $3, $4, $5)
`, s.ID, []byte(s.Payload), s.RemoteAddr, s.UserAgent, s.ReceivedAt)
	return err
}

func (r *DistressRepository) List(ctx context.Context, limit, offset int) ([]distress.Signal, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, payload, remote_addr, user_agent, received_at
FROM distress_signals
ORDER BY received_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []distress.Signal{}
	for rows.Next() {
		var s distress.Signal
		var payload []byte
		var received time.Time
		if err := rows.Scan(&s.ID, &payload, &s.RemoteAddr, &s.UserAgent, &received); err != nil {
			return nil, err
		}
		s.Payload = payload
		s.ReceivedAt = received.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
