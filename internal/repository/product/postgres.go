package product

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

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.ProductDefinition, error) {
	const q = `
SELECT id::text, store_id::text, name, description, price_cents, image_url, created_at
FROM products
WHERE store_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.ProductDefinition
	for rows.Next() {
		var p domain.ProductDefinition
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.ProductDefinition, error) {
	const q = `
SELECT id::text, store_id::text, name, description, price_cents, image_url, created_at
FROM products
WHERE store_id = $1 AND id = $2
`
	var p domain.ProductDefinition
	err := r.pool.QueryRow(ctx, q, storeID, id).Scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	groups, err := r.loadGroups(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Groups = groups
	return &p, nil
}

func (r *postgresRepo) loadGroups(ctx context.Context, productID string) ([]*domain.OptionGroup, error) {
	const groupsQuery = `
SELECT id::text, title, multiselect, minimum, maximum, display_order
FROM option_groups
WHERE product_id = $1
ORDER BY display_order ASC
`
	rows, err := r.pool.Query(ctx, groupsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.OptionGroup
	index := make(map[string]*domain.OptionGroup)
	for rows.Next() {
		var g domain.OptionGroup
		if err := rows.Scan(&g.ID, &g.Title, &g.Multiselect, &g.Minimum, &g.Maximum, &g.Order); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
		index[g.ID] = &g
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}

	const optionsQuery = `
SELECT o.group_id::text, o.id::text, o.name, o.price_cents,
       lp.id::text, lp.name, lp.price_cents, lp.image_url
FROM options o
JOIN option_groups g ON g.id = o.group_id
LEFT JOIN products lp ON lp.id = o.linked_product_id
WHERE g.product_id = $1
ORDER BY o.display_order ASC
`
	optRows, err := r.pool.Query(ctx, optionsQuery, productID)
	if err != nil {
		return nil, err
	}
	defer optRows.Close()

	for optRows.Next() {
		var groupID string
		var opt domain.Option
		var linkedID, linkedName, linkedImage *string
		var linkedPrice *int64
		if err := optRows.Scan(&groupID, &opt.ID, &opt.Name, &opt.PriceCents, &linkedID, &linkedName, &linkedPrice, &linkedImage); err != nil {
			return nil, err
		}
		if linkedID != nil {
			linked := &domain.LinkedProduct{ID: *linkedID}
			if linkedName != nil {
				linked.Name = *linkedName
			}
			if linkedPrice != nil {
				linked.PriceCents = *linkedPrice
			}
			if linkedImage != nil {
				linked.ImageURL = *linkedImage
			}
			opt.Linked = linked
		}
		if g, ok := index[groupID]; ok {
			g.Options = append(g.Options, opt)
		}
	}
	if err := optRows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}
