package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const userColumns = `id::text, name, email, password_hash, role, COALESCE(phone, ''), COALESCE(address, ''), loyalty_points, created_at`

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (name, email, password_hash, role, phone, address, loyalty_points)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7)
RETURNING id::text, created_at
`
	if err := r.pool.QueryRow(ctx, q,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Address, u.LoyaltyPoints,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.fetchUser(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.fetchUser(ctx, q, id)
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id string, name, phone, address string) (*domain.User, error) {
	const q = `
UPDATE users
SET name = $2,
    phone = NULLIF($3, ''),
    address = NULLIF($4, '')
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id, name, phone, address)
	if err != nil {
		r.logger.Printf("user repo: update profile id=%s error=%v", id, err)
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) AddLoyaltyPoints(ctx context.Context, id string, delta int) (int, error) {
	const q = `
UPDATE users
SET loyalty_points = loyalty_points + $2
WHERE id = $1 AND loyalty_points + $2 >= 0
RETURNING loyalty_points
`
	var balance int
	err := r.pool.QueryRow(ctx, q, id, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either no such user or the redeem would overdraw.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return 0, getErr
			}
			return 0, ErrInsufficientPoints
		}
		r.logger.Printf("user repo: loyalty id=%s delta=%d error=%v", id, delta, err)
		return 0, err
	}
	return balance, nil
}

func (r *postgresRepo) AppendOrder(ctx context.Context, userID, orderID string) error {
	const q = `
INSERT INTO user_orders (user_id, order_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, userID, orderID); err != nil {
		r.logger.Printf("user repo: append order user_id=%s order_id=%s error=%v", userID, orderID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) OrderHistory(ctx context.Context, userID string) ([]string, error) {
	const q = `
SELECT order_id::text
FROM user_orders
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		r.logger.Printf("user repo: order history user_id=%s error=%v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRepo) fetchUser(ctx context.Context, q string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Phone, &u.Address, &u.LoyaltyPoints, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: fetch error=%v", err)
		return nil, err
	}
	return &u, nil
}
