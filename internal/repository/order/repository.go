package order

import (
	"context"

	"kantinho-pos/internal/domain"
)

// DailyTotal is one day of completed-order revenue.
type DailyTotal struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// MonthlyTotal is one month of completed-order revenue, keyed YYYY-MM.
type MonthlyTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

// ItemCount is an item name with the quantity sold across completed orders.
type ItemCount struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// Totals aggregates the completed side of the ledger.
type Totals struct {
	Revenue int64 `json:"revenue"`
	Orders  int64 `json:"orders"`
}

// Repository is the append-only sales ledger. Everything but the status is
// immutable once appended.
type Repository interface {
	Append(ctx context.Context, order domain.Order) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, status domain.OrderStatus) error
	DailySales(ctx context.Context, days int) ([]DailyTotal, error)
	MonthlySales(ctx context.Context, months int) ([]MonthlyTotal, error)
	TopItems(ctx context.Context, limit int) ([]ItemCount, error)
	Totals(ctx context.Context) (Totals, error)
}
