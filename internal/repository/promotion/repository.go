package promotion

import (
	"context"

	"orderfront/internal/domain"
)

type Repository interface {
	GetCoupon(ctx context.Context, storeID, code string) (*domain.Coupon, error)
	GetVoucher(ctx context.Context, storeID, code string) (*domain.Voucher, error)
}
