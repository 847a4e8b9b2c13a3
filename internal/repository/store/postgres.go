package store

import (
	"context"
	"errors"

	"orderfront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Store, error) {
	const q = `
SELECT id::text, key, name, currency, point_value_cents, created_at
FROM stores
WHERE key = $1
`
	var s domain.Store
	err := r.pool.QueryRow(ctx, q, key).Scan(&s.ID, &s.Key, &s.Name, &s.Currency, &s.PointValueCents, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
