package store

import (
	"context"

	"orderfront/internal/domain"
)

type Repository interface {
	GetByKey(ctx context.Context, key string) (*domain.Store, error)
}
