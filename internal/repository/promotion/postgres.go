package promotion

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

func (r *postgresRepo) GetCoupon(ctx context.Context, storeID, code string) (*domain.Coupon, error) {
	const q = `
SELECT id::text, store_id::text, code, kind, value, valid_from, valid_until, usage_limit, used_count
FROM coupons
WHERE store_id = $1 AND code = $2
`
	var c domain.Coupon
	var kind string
	err := r.pool.QueryRow(ctx, q, storeID, code).Scan(
		&c.ID, &c.StoreID, &c.Code, &kind, &c.Value, &c.ValidFrom, &c.ValidUntil, &c.UsageLimit, &c.UsedCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	c.Kind = domain.DiscountKind(kind)
	return &c, nil
}

func (r *postgresRepo) GetVoucher(ctx context.Context, storeID, code string) (*domain.Voucher, error) {
	const q = `
SELECT id::text, store_id::text, code, value_cents, valid_from, valid_until, redeemed
FROM vouchers
WHERE store_id = $1 AND code = $2
`
	var v domain.Voucher
	err := r.pool.QueryRow(ctx, q, storeID, code).Scan(
		&v.ID, &v.StoreID, &v.Code, &v.ValueCents, &v.ValidFrom, &v.ValidUntil, &v.Redeemed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
