// Package menu exposes catalog reads for the till and CRUD for the admin
// back office. Prices cross this boundary as codec strings and are stored as
// integer amounts.
package menu

import (
	"context"
	"fmt"
	"strings"

	"kantinho-pos/internal/domain"
	"kantinho-pos/internal/price"
	menurepo "kantinho-pos/internal/repository/menu"
)

// Service wraps the catalog repository with validation and codec handling.
type Service struct {
	repo menurepo.Repository
}

func New(repo menurepo.Repository) *Service {
	return &Service{repo: repo}
}

// ItemInput mirrors incoming create/update payloads. Pizzas carry Prices,
// every other kind carries Price.
type ItemInput struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       string                 `json:"price"`
	Prices      map[domain.Size]string `json:"prices"`
	Active      bool                   `json:"active"`
}

// List returns every catalog item of a kind, inactive ones included.
func (s *Service) List(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error) {
	return s.repo.ListByKind(ctx, kind)
}

// ListActive returns the sellable items of a kind.
func (s *Service) ListActive(ctx context.Context, kind domain.ItemKind) ([]domain.MenuItem, error) {
	items, err := s.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	active := items[:0]
	for _, item := range items {
		if item.Active {
			active = append(active, item)
		}
	}
	return active, nil
}

// Get returns one catalog item by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new catalog item of the given kind.
func (s *Service) Create(ctx context.Context, kind domain.ItemKind, in ItemInput) (*domain.MenuItem, error) {
	item, err := itemFromInput(kind, in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, item)
}

// Update replaces the mutable fields of an existing item.
func (s *Service) Update(ctx context.Context, id string, in ItemInput) (*domain.MenuItem, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item, err := itemFromInput(existing.Kind, in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	return s.repo.Update(ctx, item)
}

// Delete removes an item from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func itemFromInput(kind domain.ItemKind, in ItemInput) (domain.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.MenuItem{}, fmt.Errorf("%w: name required", domain.ErrInvalid)
	}
	item := domain.MenuItem{
		Kind:        kind,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Active:      in.Active,
	}
	if kind == domain.KindPizza {
		if len(in.Prices) == 0 {
			return domain.MenuItem{}, fmt.Errorf("%w: prices required", domain.ErrInvalid)
		}
		item.Prices = make(map[domain.Size]int64, 3)
		for _, size := range []domain.Size{domain.SizeLarge, domain.SizeMedium, domain.SizeSmall} {
			str, ok := in.Prices[size]
			if !ok {
				return domain.MenuItem{}, fmt.Errorf("%w: price for every size required", domain.ErrInvalid)
			}
			item.Prices[size] = price.Parse(str)
		}
		return item, nil
	}
	if strings.TrimSpace(in.Price) == "" {
		return domain.MenuItem{}, fmt.Errorf("%w: price required", domain.ErrInvalid)
	}
	item.Price = price.Parse(in.Price)
	return item, nil
}
