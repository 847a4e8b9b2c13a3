package fulfillment

import (
	"context"

	"orderfront/internal/domain"
)

type Repository interface {
	ListMethods(ctx context.Context, storeID string) ([]domain.FulfillmentMethod, error)
	GetMethod(ctx context.Context, storeID string, methodType domain.MethodType) (*domain.FulfillmentMethod, error)
	ListWindows(ctx context.Context, storeID string) ([]domain.TimeWindow, error)
	ListClosures(ctx context.Context, storeID string) ([]domain.Closure, error)
}
