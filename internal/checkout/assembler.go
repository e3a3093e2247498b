// Package checkout turns the current cart into an immutable order, hands it
// to the sales ledger and reports loyalty points to the identity store.
package checkout

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"kantinho-pos/internal/cart"
	"kantinho-pos/internal/domain"
)

// Ledger is the append-only order store. Append returns the stored order id.
type Ledger interface {
	Append(ctx context.Context, order domain.Order) (string, error)
}

// Identity receives loyalty points and order history at checkout. The
// assembler treats these writes as fire-and-forget: a failure is logged,
// never surfaced to the till.
type Identity interface {
	AwardPoints(ctx context.Context, userID string, points int) error
	AppendOrderToHistory(ctx context.Context, userID, orderID string) error
}

// Variant selects which receipt the order snapshot follows.
type Variant string

const (
	// VariantInvoice stores principal lines only and charges no fees.
	VariantInvoice Variant = "invoice"
	// VariantSimplified stores every line and adds the flat box fee plus the
	// delivery fee taken from a delivery-zone line, if one is in the cart.
	VariantSimplified Variant = "simplified"
)

// DefaultBoxFee is the flat packaging charge of the simplified receipt.
const DefaultBoxFee int64 = 100

// CustomerMeta is the free-form information captured at checkout.
type CustomerMeta struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	DeliveryPerson string `json:"deliveryPerson"`
	PaymentMethod  string `json:"paymentMethod"`
	Observations   string `json:"observations"`
}

// Assembler owns the cart-to-order transformation.
type Assembler struct {
	ledger   Ledger
	identity Identity
	logger   *log.Logger
	boxFee   int64
	now      func() time.Time
	newID    func() string
}

func New(ledger Ledger, identity Identity, logger *log.Logger) *Assembler {
	return &Assembler{
		ledger:   ledger,
		identity: identity,
		logger:   logger,
		boxFee:   DefaultBoxFee,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Finalize snapshots the cart into an order, appends it to the ledger and
// clears the cart. It returns the stored order and the loyalty points earned.
// An empty cart is rejected before anything reaches the ledger; a ledger
// failure leaves the cart untouched.
func (a *Assembler) Finalize(ctx context.Context, c *cart.Cart, userID string, meta CustomerMeta, variant Variant) (*domain.Order, int, error) {
	if c.Empty() {
		return nil, 0, domain.ErrEmptyCart
	}

	items := c.Items()
	points := loyaltyPoints(items)

	now := a.now()
	order := domain.Order{
		ID:              a.newID(),
		Items:           orderItems(items, variant),
		Total:           orderTotal(c.TotalAmount(), items, variant, a.boxFee),
		Date:            now.Format("2006-01-02"),
		Time:            now.Format("15:04:05"),
		Status:          domain.StatusCompleted,
		CustomerName:    meta.Name,
		CustomerPhone:   meta.Phone,
		CustomerAddress: meta.Address,
		DeliveryPerson:  meta.DeliveryPerson,
		PaymentMethod:   meta.PaymentMethod,
		Observations:    meta.Observations,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "Dinheiro"
	}

	orderID, err := a.ledger.Append(ctx, order)
	if err != nil {
		return nil, 0, err
	}
	order.ID = orderID

	// Point of no return: the order is on the ledger.
	c.Clear()

	if userID != "" {
		if points > 0 {
			if err := a.identity.AwardPoints(ctx, userID, points); err != nil {
				a.logger.Printf("award %d points to %s: %v", points, userID, err)
			}
		}
		if err := a.identity.AppendOrderToHistory(ctx, userID, orderID); err != nil {
			a.logger.Printf("append order %s to history of %s: %v", orderID, userID, err)
		}
	}

	return &order, points, nil
}

// loyaltyPoints counts one point per pizza-family unit; add-ons and
// beverages earn nothing.
func loyaltyPoints(items []domain.LineItem) int {
	points := 0
	for _, item := range items {
		if item.ParentID == "" && item.Kind.PizzaFamily() {
			points += item.Quantity
		}
	}
	return points
}

func orderItems(items []domain.LineItem, variant Variant) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if variant == VariantInvoice && item.ParentID != "" {
			continue
		}
		out = append(out, domain.OrderItem{
			LineID:     item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Kind:       item.Kind,
			Size:       item.Size,
			FirstHalf:  item.FirstHalf,
			SecondHalf: item.SecondHalf,
		})
	}
	return out
}

func orderTotal(cartTotal int64, items []domain.LineItem, variant Variant, boxFee int64) int64 {
	if variant != VariantSimplified {
		return cartTotal
	}
	return cartTotal + boxFee + deliveryFee(items)
}

// deliveryFee is the unit amount of the first delivery-zone line, if any.
func deliveryFee(items []domain.LineItem) int64 {
	for _, item := range items {
		if item.Kind == domain.KindDeliveryZone {
			return item.UnitAmount
		}
	}
	return 0
}
