package order

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

func (r *postgresRepo) Append(ctx context.Context, order domain.Order) (string, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	const orderQ = `
INSERT INTO orders (id, total, order_date, order_time, status, customer_name, customer_phone,
                    customer_address, delivery_person, payment_method, observations)
VALUES ($1, $2, $3::date, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, NULLIF($11, ''))
RETURNING id::text
`
	var orderID string
	if err := tx.QueryRow(ctx, orderQ,
		order.ID, order.Total, order.Date, order.Time, string(order.Status),
		order.CustomerName, order.CustomerPhone, order.CustomerAddress,
		order.DeliveryPerson, order.PaymentMethod, order.Observations,
	).Scan(&orderID); err != nil {
		r.logger.Printf("order repo: append id=%s error=%v", order.ID, err)
		return "", err
	}

	const itemQ = `
INSERT INTO order_items (order_id, line_id, name, price, quantity, kind, size,
                         first_half_name, first_half_price, second_half_name, second_half_price, position)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)
`
	for i, item := range order.Items {
		var firstName, firstPrice, secondName, secondPrice *string
		if item.FirstHalf != nil {
			firstName, firstPrice = &item.FirstHalf.Name, &item.FirstHalf.Price
		}
		if item.SecondHalf != nil {
			secondName, secondPrice = &item.SecondHalf.Name, &item.SecondHalf.Price
		}
		if _, err := tx.Exec(ctx, itemQ,
			orderID, item.LineID, item.Name, item.Price, item.Quantity, string(item.Kind), string(item.Size),
			firstName, firstPrice, secondName, secondPrice, i,
		); err != nil {
			r.logger.Printf("order repo: append item order_id=%s name=%s error=%v", orderID, item.Name, err)
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return orderID, nil
}

const orderColumns = `
id::text, total, order_date::text, order_time, status, COALESCE(customer_name, ''), COALESCE(customer_phone, ''),
COALESCE(customer_address, ''), COALESCE(delivery_person, ''), payment_method, COALESCE(observations, '')`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	items, err := r.fetchItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		items, err := r.fetchItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		r.logger.Printf("order repo: set status id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DailySales(ctx context.Context, days int) ([]DailyTotal, error) {
	const q = `
SELECT d::date::text, COALESCE(SUM(o.total), 0)
FROM generate_series(CURRENT_DATE - ($1::int - 1), CURRENT_DATE, interval '1 day') AS d
LEFT JOIN orders o ON o.order_date = d::date AND o.status = 'completed'
GROUP BY d
ORDER BY d
`
	rows, err := r.pool.Query(ctx, q, days)
	if err != nil {
		r.logger.Printf("order repo: daily sales error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []DailyTotal
	for rows.Next() {
		var t DailyTotal
		if err := rows.Scan(&t.Date, &t.Total); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) MonthlySales(ctx context.Context, months int) ([]MonthlyTotal, error) {
	const q = `
SELECT to_char(m, 'YYYY-MM'), COALESCE(SUM(o.total), 0)
FROM generate_series(
	date_trunc('month', CURRENT_DATE) - make_interval(months => $1::int - 1),
	date_trunc('month', CURRENT_DATE),
	interval '1 month') AS m
LEFT JOIN orders o ON date_trunc('month', o.order_date) = m AND o.status = 'completed'
GROUP BY m
ORDER BY m
`
	rows, err := r.pool.Query(ctx, q, months)
	if err != nil {
		r.logger.Printf("order repo: monthly sales error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []MonthlyTotal
	for rows.Next() {
		var t MonthlyTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *postgresRepo) TopItems(ctx context.Context, limit int) ([]ItemCount, error) {
	const q = `
SELECT i.name, SUM(i.quantity)::bigint
FROM order_items i
JOIN orders o ON o.id = i.order_id
WHERE o.status = 'completed'
GROUP BY i.name
ORDER BY SUM(i.quantity) DESC, i.name ASC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		r.logger.Printf("order repo: top items error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []ItemCount
	for rows.Next() {
		var c ItemCount
		if err := rows.Scan(&c.Name, &c.Quantity); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Totals(ctx context.Context) (Totals, error) {
	const q = `SELECT COALESCE(SUM(total), 0), COUNT(*) FROM orders WHERE status = 'completed'`
	var t Totals
	if err := r.pool.QueryRow(ctx, q).Scan(&t.Revenue, &t.Orders); err != nil {
		r.logger.Printf("order repo: totals error=%v", err)
		return Totals{}, err
	}
	return t, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT line_id, name, price, quantity, kind, COALESCE(size, ''),
       first_half_name, first_half_price, second_half_name, second_half_price
FROM order_items
WHERE order_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		r.logger.Printf("order repo: items order_id=%s error=%v", orderID, err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var kind, size string
		var firstName, firstPrice, secondName, secondPrice *string
		if err := rows.Scan(&item.LineID, &item.Name, &item.Price, &item.Quantity, &kind, &size,
			&firstName, &firstPrice, &secondName, &secondPrice); err != nil {
			return nil, err
		}
		item.Kind = domain.ItemKind(kind)
		item.Size = domain.Size(size)
		if firstName != nil && firstPrice != nil {
			item.FirstHalf = &domain.Half{Name: *firstName, Price: *firstPrice}
		}
		if secondName != nil && secondPrice != nil {
			item.SecondHalf = &domain.Half{Name: *secondName, Price: *secondPrice}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var order domain.Order
	var status string
	if err := row.Scan(&order.ID, &order.Total, &order.Date, &order.Time, &status,
		&order.CustomerName, &order.CustomerPhone, &order.CustomerAddress,
		&order.DeliveryPerson, &order.PaymentMethod, &order.Observations); err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)
	return order, nil
}
