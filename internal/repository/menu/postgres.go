package menu

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kantinho-pos/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const itemColumns = `id::text, kind, name, COALESCE(description, ''), price, price_large, price_medium, price_small, active, created_at`

func (r *postgresRepo) ListByKind(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error) {
	q := `
SELECT ` + itemColumns + `
FROM menu_items
WHERE kind = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, string(kind))
	if err != nil {
		r.logger.Printf("menu repo: list kind=%s error=%v", kind, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("menu repo: list rows kind=%s error=%v", kind, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	q := `
SELECT ` + itemColumns + `
FROM menu_items
WHERE id = $1
`
	item, err := scanItem(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("menu repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (kind, name, description, price, price_large, price_medium, price_small, active)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
RETURNING id::text, created_at
`
	large, medium, small := sizePrices(item)
	if err := r.pool.QueryRow(ctx, q,
		string(item.Kind), item.Name, item.Description, item.Price, large, medium, small, item.Active,
	).Scan(&item.ID, &item.CreatedAt); err != nil {
		r.logger.Printf("menu repo: create kind=%s name=%s error=%v", item.Kind, item.Name, err)
		return nil, err
	}
	return &item, nil
}

func (r *postgresRepo) Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
UPDATE menu_items
SET name = $2,
    description = NULLIF($3, ''),
    price = $4,
    price_large = $5,
    price_medium = $6,
    price_small = $7,
    active = $8
WHERE id = $1
RETURNING kind, created_at
`
	large, medium, small := sizePrices(item)
	var kind string
	err := r.pool.QueryRow(ctx, q,
		item.ID, item.Name, item.Description, item.Price, large, medium, small, item.Active,
	).Scan(&kind, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("menu repo: update id=%s error=%v", item.ID, err)
		return nil, err
	}
	item.Kind = domain.ItemKind(kind)
	return &item, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("menu repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func sizePrices(item domain.MenuItem) (large, medium, small *int64) {
	if len(item.Prices) == 0 {
		return nil, nil, nil
	}
	l, m, s := item.Prices[domain.SizeLarge], item.Prices[domain.SizeMedium], item.Prices[domain.SizeSmall]
	return &l, &m, &s
}

func scanItem(row pgx.Row) (domain.MenuItem, error) {
	var item domain.MenuItem
	var kind string
	var large, medium, small *int64
	if err := row.Scan(&item.ID, &kind, &item.Name, &item.Description, &item.Price, &large, &medium, &small, &item.Active, &item.CreatedAt); err != nil {
		return domain.MenuItem{}, err
	}
	item.Kind = domain.ItemKind(kind)
	if large != nil || medium != nil || small != nil {
		item.Prices = make(map[domain.Size]int64, 3)
		if large != nil {
			item.Prices[domain.SizeLarge] = *large
		}
		if medium != nil {
			item.Prices[domain.SizeMedium] = *medium
		}
		if small != nil {
			item.Prices[domain.SizeSmall] = *small
		}
	}
	return item, nil
}
