// Package cartsession stores each session's serialized cart lines in
// Postgres, implementing cart.Storage for the HTTP layer.
package cartsession

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPostgres(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, timeout: 3 * time.Second}
}

// ForSession binds the repo to one (store, session) pair as a cart.Storage.
// The cart store itself is synchronous, so Load and Save carry their own
// bounded contexts.
func (r *Repo) ForSession(storeID, sessionID string) *SessionStorage {
	return &SessionStorage{repo: r, storeID: storeID, sessionID: sessionID}
}

type SessionStorage struct {
	repo      *Repo
	storeID   string
	sessionID string
}

func (s *SessionStorage) Load() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.repo.timeout)
	defer cancel()

	const q = `
SELECT lines
FROM cart_sessions
WHERE store_id = $1 AND session_id = $2
`
	var data []byte
	err := s.repo.pool.QueryRow(ctx, q, s.storeID, s.sessionID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *SessionStorage) Save(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.repo.timeout)
	defer cancel()

	const q = `
INSERT INTO cart_sessions (store_id, session_id, lines, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (store_id, session_id) DO UPDATE
SET lines = EXCLUDED.lines,
    updated_at = now()
`
	_, err := s.repo.pool.Exec(ctx, q, s.storeID, s.sessionID, data)
	return err
}

// Delete removes the persisted cart, used after successful order
// submission.
func (s *SessionStorage) Delete() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.repo.timeout)
	defer cancel()

	_, err := s.repo.pool.Exec(ctx, `
DELETE FROM cart_sessions
WHERE store_id = $1 AND session_id = $2
`, s.storeID, s.sessionID)
	return err
}
