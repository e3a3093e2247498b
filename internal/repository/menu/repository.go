package menu

import (
	"context"

	"kantinho-pos/internal/domain"
)

type Repository interface {
	ListByKind(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error)
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Update(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}
