// Package till owns the single active cart of the shop: the line items being
// composed, the half-and-half flow and the checkout handoff. One till, one
// cart; the mutex only serializes HTTP access, the stores themselves are
// plain values.
package till

import (
	"context"
	"errors"
	"sync"

	"kantinho-pos/internal/cart"
	"kantinho-pos/internal/checkout"
	"kantinho-pos/internal/domain"
	"kantinho-pos/internal/halfhalf"
	"kantinho-pos/internal/price"
)

var (
	// ErrNoHalfFlow is returned when a half-and-half action arrives with no
	// flow in progress.
	ErrNoHalfFlow = errors.New("no half-and-half selection in progress")
	// ErrSizeRequired is returned when a pizza is added without a valid size.
	ErrSizeRequired = errors.New("a valid size is required")
	// ErrNotAnExtra is returned when a non-add-on item is attached to a line.
	ErrNotAnExtra = errors.New("item is not an extra")
)

type catalog interface {
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
}

// Service is the till. All operations run under one mutex.
type Service struct {
	mu        sync.Mutex
	cart      *cart.Cart
	composer  *halfhalf.Composer
	assembler *checkout.Assembler
	catalog   catalog
}

// New wires the till around an injected cart.
func New(c *cart.Cart, catalog catalog, assembler *checkout.Assembler) *Service {
	return &Service{cart: c, catalog: catalog, assembler: assembler}
}

// View is the cart as the till renders it.
type View struct {
	Items       []domain.LineItem      `json:"items"`
	Grouped     []checkout.GroupedLine `json:"grouped"`
	TotalItems  int                    `json:"totalItems"`
	TotalAmount int64                  `json:"totalAmount"`
	TotalPrice  string                 `json:"totalPrice"`
}

// Cart returns the current cart view, grouped for the given receipt variant.
func (s *Service) Cart(variant checkout.Variant) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(variant)
}

func (s *Service) view(variant checkout.Variant) View {
	items := s.cart.Items()
	return View{
		Items:       items,
		Grouped:     checkout.Group(items, variant),
		TotalItems:  s.cart.TotalItems(),
		TotalAmount: s.cart.TotalAmount(),
		TotalPrice:  price.Format(s.cart.TotalAmount()),
	}
}

// AddMenuItem puts one unit of a catalog item into the cart. Pizzas need a
// size; flat-priced kinds ignore it.
func (s *Service) AddMenuItem(ctx context.Context, menuItemID string, size domain.Size) (View, error) {
	item, err := s.sellable(ctx, menuItemID)
	if err != nil {
		return View{}, err
	}

	cand := cart.Candidate{Name: item.Name, Kind: item.Kind}
	if item.Kind == domain.KindPizza {
		if !domain.ValidSize(size) {
			return View{}, ErrSizeRequired
		}
		cand.Size = size
		cand.Price = price.Format(item.PriceOf(size))
	} else {
		cand.Price = price.Format(item.Price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(cand)
	return s.view(checkout.VariantInvoice), nil
}

// AddExtra attaches one unit of an add-on catalog item to an existing line.
// A vanished parent line makes this a no-op, mirroring the cart store.
func (s *Service) AddExtra(ctx context.Context, parentLineID, extraMenuItemID string) (View, error) {
	item, err := s.sellable(ctx, extraMenuItemID)
	if err != nil {
		return View{}, err
	}
	if item.Kind != domain.KindAddOn {
		return View{}, ErrNotAnExtra
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddExtraToItem(parentLineID, cart.Candidate{
		Name:  item.Name,
		Price: price.Format(item.Price),
		Kind:  domain.KindAddOn,
	})
	return s.view(checkout.VariantInvoice), nil
}

// UpdateQuantity sets a line's quantity; zero or less removes it.
func (s *Service) UpdateQuantity(lineID string, quantity int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(lineID, quantity)
	return s.view(checkout.VariantInvoice)
}

// RemoveLine deletes a line, cascading to its add-ons for parent-capable
// kinds.
func (s *Service) RemoveLine(lineID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(lineID)
	return s.view(checkout.VariantInvoice)
}

// ClearCart empties the till.
func (s *Service) ClearCart() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.view(checkout.VariantInvoice)
}

// Checkout finalizes the cart into an order. The assembler clears the cart
// once the ledger append succeeds.
func (s *Service) Checkout(ctx context.Context, userID string, meta checkout.CustomerMeta, variant checkout.Variant) (*domain.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assembler.Finalize(ctx, s.cart, userID, meta, variant)
}

func (s *Service) sellable(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
