package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type optionSeed struct {
	Name          string
	PriceCents    int64
	LinkedProduct string
}

type groupSeed struct {
	Title       string
	Multiselect bool
	Minimum     int
	Maximum     int
	Options     []optionSeed
}

type productSeed struct {
	Name        string
	Description string
	PriceCents  *int64
	ImageURL    string
	Groups      []groupSeed
}

func cents(v int64) *int64 { return &v }

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	storeID, err := ensureStore(ctx, pool, "demo", "Demo Bistro", "EUR")
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	products := []productSeed{
		{
			Name:       "Fries",
			PriceCents: cents(350),
			ImageURL:   "/img/fries.jpg",
		},
		{
			Name:       "Sparkling Water",
			PriceCents: cents(250),
		},
		{
			Name:        "House Burger",
			Description: "Smashed patty with pickles and house sauce",
			PriceCents:  cents(950),
			ImageURL:    "/img/burger.jpg",
			Groups: []groupSeed{
				{
					Title:   "Patty",
					Minimum: 1, Maximum: 1,
					Options: []optionSeed{
						{Name: "Beef"},
						{Name: "Double beef", PriceCents: 300},
						{Name: "Veggie"},
					},
				},
				{
					Title:       "Extras",
					Multiselect: true,
					Maximum:     3,
					Options: []optionSeed{
						{Name: "Cheese", PriceCents: 100},
						{Name: "Bacon", PriceCents: 150},
						{Name: "Jalapenos", PriceCents: 80},
					},
				},
				{
					Title:   "Side",
					Maximum: 1,
					Options: []optionSeed{
						{Name: "Add fries", PriceCents: 300, LinkedProduct: "Fries"},
					},
				},
			},
		},
		{
			Name:        "Chef's Special",
			Description: "Ask the kitchen, priced on the day",
		},
	}

	productIDs := make(map[string]string, len(products))
	for _, p := range products {
		id, err := upsertProduct(ctx, pool, storeID, p)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
		productIDs[p.Name] = id
	}
	for _, p := range products {
		for order, g := range p.Groups {
			if err := upsertGroup(ctx, pool, productIDs, productIDs[p.Name], order, g); err != nil {
				return fmt.Errorf("upsert group %s/%s: %w", p.Name, g.Title, err)
			}
		}
	}

	if err := seedFulfillment(ctx, pool, storeID); err != nil {
		return fmt.Errorf("seed fulfillment: %w", err)
	}
	if err := seedPromotions(ctx, pool, storeID); err != nil {
		return fmt.Errorf("seed promotions: %w", err)
	}
	return nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, key, name, currency string) (string, error) {
	const q = `
INSERT INTO stores (key, name, currency)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name, currency = EXCLUDED.currency
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, key, name, currency).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, storeID string, p productSeed) (string, error) {
	const q = `
INSERT INTO products (store_id, name, description, price_cents, image_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (store_id, name) DO UPDATE
SET description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    image_url = EXCLUDED.image_url
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, storeID, p.Name, p.Description, p.PriceCents, p.ImageURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertGroup(ctx context.Context, pool *pgxpool.Pool, productIDs map[string]string, productID string, order int, g groupSeed) error {
	const q = `
INSERT INTO option_groups (product_id, title, multiselect, minimum, maximum, display_order)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (product_id, title) DO UPDATE
SET multiselect = EXCLUDED.multiselect,
    minimum = EXCLUDED.minimum,
    maximum = EXCLUDED.maximum,
    display_order = EXCLUDED.display_order
RETURNING id::text
`
	var groupID string
	if err := pool.QueryRow(ctx, q, productID, g.Title, g.Multiselect, g.Minimum, g.Maximum, order).Scan(&groupID); err != nil {
		return err
	}

	const oq = `
INSERT INTO options (group_id, name, price_cents, linked_product_id, display_order)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (group_id, name) DO UPDATE
SET price_cents = EXCLUDED.price_cents,
    linked_product_id = EXCLUDED.linked_product_id,
    display_order = EXCLUDED.display_order
`
	for order, o := range g.Options {
		var linked *string
		if o.LinkedProduct != "" {
			id, ok := productIDs[o.LinkedProduct]
			if !ok {
				return fmt.Errorf("linked product %q not seeded", o.LinkedProduct)
			}
			linked = &id
		}
		if _, err := pool.Exec(ctx, oq, groupID, o.Name, o.PriceCents, linked, order); err != nil {
			return err
		}
	}
	return nil
}

func seedFulfillment(ctx context.Context, pool *pgxpool.Pool, storeID string) error {
	const mq = `
INSERT INTO fulfillment_methods
    (store_id, type, enabled, base_fee_cents, extra_cents_per_km, minimum_order_cents, radius_km,
     require_last_name, require_phone, require_email)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (store_id, type) DO UPDATE
SET enabled = EXCLUDED.enabled,
    base_fee_cents = EXCLUDED.base_fee_cents,
    extra_cents_per_km = EXCLUDED.extra_cents_per_km,
    minimum_order_cents = EXCLUDED.minimum_order_cents,
    radius_km = EXCLUDED.radius_km,
    require_last_name = EXCLUDED.require_last_name,
    require_phone = EXCLUDED.require_phone,
    require_email = EXCLUDED.require_email
`
	methods := [][]any{
		{storeID, "delivery", true, int64(250), int64(50), int64(1500), 6.0, true, true, false},
		{storeID, "takeaway", true, int64(0), int64(0), int64(0), 0.0, true, false, false},
		{storeID, "dine-in", true, int64(0), int64(0), int64(0), 0.0, false, false, false},
	}
	for _, args := range methods {
		if _, err := pool.Exec(ctx, mq, args...); err != nil {
			return err
		}
	}

	// One row per method and weekday; lunch plus dinner on weekends.
	const wq = `
INSERT INTO time_windows (store_id, method, weekday, start_time, end_time, interval_minutes, max_orders, enabled)
SELECT $1, $2, $3, $4, $5, $6, $7, true
WHERE NOT EXISTS (
    SELECT 1 FROM time_windows
    WHERE store_id = $1 AND method = $2 AND weekday = $3 AND start_time = $4
)
`
	maxOrders := 8
	for weekday := 1; weekday <= 7; weekday++ {
		for _, method := range []string{"delivery", "takeaway", "dine-in"} {
			if _, err := pool.Exec(ctx, wq, storeID, method, weekday, "11:30", "14:00", 30, &maxOrders); err != nil {
				return err
			}
			if weekday >= 5 {
				if _, err := pool.Exec(ctx, wq, storeID, method, weekday, "18:00", "21:30", 30, &maxOrders); err != nil {
					return err
				}
			}
		}
	}

	const cq = `
INSERT INTO closures (store_id, closed_on, reason)
VALUES ($1, $2, $3)
ON CONFLICT (store_id, closed_on) DO UPDATE SET reason = EXCLUDED.reason
`
	_, err := pool.Exec(ctx, cq, storeID, "2026-12-25", "Christmas")
	return err
}

func seedPromotions(ctx context.Context, pool *pgxpool.Pool, storeID string) error {
	const cq = `
INSERT INTO coupons (store_id, code, kind, value, valid_from, valid_until)
VALUES ($1, $2, $3, $4, now(), now() + interval '90 days')
ON CONFLICT (store_id, code) DO UPDATE
SET kind = EXCLUDED.kind, value = EXCLUDED.value, valid_until = EXCLUDED.valid_until
`
	if _, err := pool.Exec(ctx, cq, storeID, "WELCOME10", "percentage", int64(10)); err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, cq, storeID, "TAKE5", "fixed", int64(500)); err != nil {
		return err
	}

	const vq = `
INSERT INTO vouchers (store_id, code, value_cents, valid_from, valid_until)
VALUES ($1, $2, $3, now(), now() + interval '365 days')
ON CONFLICT (store_id, code) DO UPDATE
SET value_cents = EXCLUDED.value_cents, valid_until = EXCLUDED.valid_until
`
	_, err := pool.Exec(ctx, vq, storeID, "GIFT-2026", int64(1000))
	return err
}
