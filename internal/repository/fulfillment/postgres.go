package fulfillment

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

const methodColumns = `
store_id::text, type, enabled, base_fee_cents, extra_cents_per_km,
minimum_order_cents, radius_km, require_last_name, require_phone, require_email
`

func (r *postgresRepo) ListMethods(ctx context.Context, storeID string) ([]domain.FulfillmentMethod, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+methodColumns+`
FROM fulfillment_methods
WHERE store_id = $1
ORDER BY type ASC
`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var methods []domain.FulfillmentMethod
	for rows.Next() {
		m, err := scanMethod(rows)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *postgresRepo) GetMethod(ctx context.Context, storeID string, methodType domain.MethodType) (*domain.FulfillmentMethod, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+methodColumns+`
FROM fulfillment_methods
WHERE store_id = $1 AND type = $2
`, storeID, string(methodType))
	m, err := scanMethod(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func scanMethod(row pgx.Row) (domain.FulfillmentMethod, error) {
	var m domain.FulfillmentMethod
	var methodType string
	err := row.Scan(
		&m.StoreID,
		&methodType,
		&m.Enabled,
		&m.BaseFeeCents,
		&m.ExtraCentsPerKm,
		&m.MinimumOrderCents,
		&m.RadiusKm,
		&m.RequireLastName,
		&m.RequirePhone,
		&m.RequireEmail,
	)
	if err != nil {
		return domain.FulfillmentMethod{}, err
	}
	m.Type = domain.MethodType(methodType)
	return m, nil
}

func (r *postgresRepo) ListWindows(ctx context.Context, storeID string) ([]domain.TimeWindow, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, store_id::text, method, weekday, start_time, end_time, interval_minutes, max_orders, enabled
FROM time_windows
WHERE store_id = $1
ORDER BY weekday ASC, start_time ASC
`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []domain.TimeWindow
	for rows.Next() {
		var w domain.TimeWindow
		var method string
		if err := rows.Scan(&w.ID, &w.StoreID, &method, &w.Weekday, &w.Start, &w.End, &w.IntervalMinutes, &w.MaxOrders, &w.Enabled); err != nil {
			return nil, err
		}
		w.Method = domain.MethodType(method)
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *postgresRepo) ListClosures(ctx context.Context, storeID string) ([]domain.Closure, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, store_id::text, closed_on, reason
FROM closures
WHERE store_id = $1
ORDER BY closed_on ASC
`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var closures []domain.Closure
	for rows.Next() {
		var c domain.Closure
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Date, &c.Reason); err != nil {
			return nil, err
		}
		closures = append(closures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return closures, nil
}
