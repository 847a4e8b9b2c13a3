package product

import (
	"context"

	"orderfront/internal/domain"
)

type Repository interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.ProductDefinition, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.ProductDefinition, error)
}
