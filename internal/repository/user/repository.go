package user

import (
	"context"
	"errors"

	"kantinho-pos/internal/domain"
)

// ErrInsufficientPoints is returned when a redeem would drive the loyalty
// balance below zero.
var ErrInsufficientPoints = errors.New("insufficient loyalty points")

// Repository persists operator/customer accounts, their loyalty balance and
// order history.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id string, name, phone, address string) (*domain.User, error)
	// AddLoyaltyPoints applies a delta (negative to redeem) and returns the
	// new balance. Redeems that would go below zero fail with
	// ErrInsufficientPoints.
	AddLoyaltyPoints(ctx context.Context, id string, delta int) (int, error)
	AppendOrder(ctx context.Context, userID, orderID string) error
	OrderHistory(ctx context.Context, userID string) ([]string, error)
}
