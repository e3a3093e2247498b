package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"kantinho-pos/internal/cart"
	"kantinho-pos/internal/domain"
)

type stubLedger struct {
	appended  []domain.Order
	appendErr error
}

func (s *stubLedger) Append(_ context.Context, order domain.Order) (string, error) {
	if s.appendErr != nil {
		return "", s.appendErr
	}
	s.appended = append(s.appended, order)
	return order.ID, nil
}

type stubIdentity struct {
	pointsAwarded int
	pointsUser    string
	historyOrders []string
	awardErr      error
	historyErr    error
}

func (s *stubIdentity) AwardPoints(_ context.Context, userID string, points int) error {
	if s.awardErr != nil {
		return s.awardErr
	}
	s.pointsUser = userID
	s.pointsAwarded += points
	return nil
}

func (s *stubIdentity) AppendOrderToHistory(_ context.Context, _, orderID string) error {
	if s.historyErr != nil {
		return s.historyErr
	}
	s.historyOrders = append(s.historyOrders, orderID)
	return nil
}

func newTestAssembler(ledger *stubLedger, identity *stubIdentity) *Assembler {
	a := New(ledger, identity, log.New(io.Discard, "", 0))
	a.now = func() time.Time { return time.Date(2025, 3, 14, 19, 30, 5, 0, time.UTC) }
	a.newID = func() string { return "order-1" }
	return a
}

func filledCart() *cart.Cart {
	c := cart.New()
	c.AddItem(cart.Candidate{Name: "MARGUERITA", Price: "800$00", Kind: domain.KindPizza, Size: domain.SizeLarge})
	c.AddItem(cart.Candidate{Name: "MARGUERITA", Price: "800$00", Kind: domain.KindPizza, Size: domain.SizeLarge})
	parent := c.Items()[0].ID
	c.AddExtraToItem(parent, cart.Candidate{Name: "Queijo extra", Price: "100$00"})
	c.AddItem(cart.Candidate{Name: "Cola", Price: "100$00", Kind: domain.KindBeverage})
	return c
}

func TestFinalizeEmptyCart(t *testing.T) {
	ledger := &stubLedger{}
	a := newTestAssembler(ledger, &stubIdentity{})
	_, _, err := a.Finalize(context.Background(), cart.New(), "user", CustomerMeta{}, VariantInvoice)
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(ledger.appended) != 0 {
		t.Fatalf("ledger must not be called for an empty cart")
	}
}

func TestFinalizeInvoiceVariant(t *testing.T) {
	ledger := &stubLedger{}
	identity := &stubIdentity{}
	a := newTestAssembler(ledger, identity)
	c := filledCart()

	order, points, err := a.Finalize(context.Background(), c, "user-1", CustomerMeta{Name: "Ana"}, VariantInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 800*2 + 100 extra + 100 cola, no fees.
	if order.Total != 1800 {
		t.Fatalf("expected total 1800, got %d", order.Total)
	}
	// Invoice snapshot keeps principal lines only.
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Kind == domain.KindAddOn {
			t.Fatalf("add-on leaked into invoice items")
		}
	}
	if order.Status != domain.StatusCompleted {
		t.Fatalf("expected completed status, got %s", order.Status)
	}
	if order.Date != "2025-03-14" || order.Time != "19:30:05" {
		t.Fatalf("unexpected date/time: %s %s", order.Date, order.Time)
	}
	if order.PaymentMethod != "Dinheiro" {
		t.Fatalf("expected default payment method, got %q", order.PaymentMethod)
	}
	if points != 2 {
		t.Fatalf("expected 2 loyalty points, got %d", points)
	}
	if identity.pointsAwarded != 2 || identity.pointsUser != "user-1" {
		t.Fatalf("points not reported: %+v", identity)
	}
	if len(identity.historyOrders) != 1 || identity.historyOrders[0] != "order-1" {
		t.Fatalf("order not appended to history: %+v", identity.historyOrders)
	}
	if !c.Empty() {
		t.Fatalf("cart must be cleared after checkout")
	}
}

func TestFinalizeSimplifiedVariantFees(t *testing.T) {
	ledger := &stubLedger{}
	a := newTestAssembler(ledger, &stubIdentity{})
	c := filledCart()
	c.AddItem(cart.Candidate{Name: "Palmarejo", Price: "150$00", Kind: domain.KindDeliveryZone})

	order, _, err := a.Finalize(context.Background(), c, "", CustomerMeta{}, VariantSimplified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1800 cart + 150 zone line + 100 box fee + 150 delivery fee.
	if order.Total != 2200 {
		t.Fatalf("expected total 2200, got %d", order.Total)
	}
	// Simplified snapshot keeps every line, add-ons included.
	if len(order.Items) != 4 {
		t.Fatalf("expected 4 order items, got %d", len(order.Items))
	}
}

func TestFinalizeLoyaltyPoints(t *testing.T) {
	ledger := &stubLedger{}
	identity := &stubIdentity{}
	a := newTestAssembler(ledger, identity)

	c := cart.New()
	c.AddItem(cart.Candidate{Name: "MARGUERITA", Price: "800$00", Kind: domain.KindPizza, Size: domain.SizeLarge})
	c.AddItem(cart.Candidate{Name: "FIAMBRE", Price: "850$00", Kind: domain.KindPizza, Size: domain.SizeLarge})
	c.AddItem(cart.Candidate{
		Name: "Meio a Meio: MARGUERITA / FIAMBRE", Price: "825$00",
		Kind: domain.KindHalfAndHalf, Size: domain.SizeLarge,
		FirstHalf:  &domain.Half{Name: "MARGUERITA", Price: "800$00"},
		SecondHalf: &domain.Half{Name: "FIAMBRE", Price: "850$00"},
	})
	c.AddItem(cart.Candidate{Name: "Cola", Price: "100$00", Kind: domain.KindBeverage})
	colaID := c.Items()[3].ID
	c.UpdateQuantity(colaID, 3)

	_, points, err := a.Finalize(context.Background(), c, "user-1", CustomerMeta{}, VariantInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if points != 3 {
		t.Fatalf("expected 3 points (pizza family only), got %d", points)
	}
}

func TestFinalizeLedgerFailureKeepsCart(t *testing.T) {
	ledger := &stubLedger{appendErr: errors.New("ledger down")}
	a := newTestAssembler(ledger, &stubIdentity{})
	c := filledCart()

	_, _, err := a.Finalize(context.Background(), c, "user", CustomerMeta{}, VariantInvoice)
	if err == nil || err.Error() != "ledger down" {
		t.Fatalf("expected ledger error, got %v", err)
	}
	if c.Empty() {
		t.Fatalf("cart must survive a ledger failure")
	}
}

func TestFinalizeIdentityFailureIsSoft(t *testing.T) {
	ledger := &stubLedger{}
	identity := &stubIdentity{awardErr: errors.New("down"), historyErr: errors.New("down")}
	a := newTestAssembler(ledger, identity)
	c := filledCart()

	order, _, err := a.Finalize(context.Background(), c, "user", CustomerMeta{}, VariantInvoice)
	if err != nil {
		t.Fatalf("identity failures must not fail checkout: %v", err)
	}
	if order == nil || !c.Empty() {
		t.Fatalf("checkout must complete despite identity failures")
	}
}

func TestFinalizeAnonymousSkipsIdentity(t *testing.T) {
	identity := &stubIdentity{}
	a := newTestAssembler(&stubLedger{}, identity)
	c := filledCart()

	_, _, err := a.Finalize(context.Background(), c, "", CustomerMeta{}, VariantInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.pointsAwarded != 0 || len(identity.historyOrders) != 0 {
		t.Fatalf("identity must not be called without a user")
	}
}

func TestGroup(t *testing.T) {
	c := filledCart()
	c.AddItem(cart.Candidate{Name: "Palmarejo", Price: "150$00", Kind: domain.KindDeliveryZone})
	items := c.Items()

	grouped := Group(items, VariantInvoice)
	if len(grouped) != 3 {
		t.Fatalf("expected 3 principal groups, got %d", len(grouped))
	}
	if len(grouped[0].Extras) != 1 || grouped[0].Extras[0].Name != "Queijo extra" {
		t.Fatalf("extras not attached to parent: %+v", grouped[0])
	}

	simplified := Group(items, VariantSimplified)
	for _, g := range simplified {
		if g.Item.Kind == domain.KindDeliveryZone {
			t.Fatalf("delivery zone must be excluded from simplified groups")
		}
	}
	if len(simplified) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(simplified))
	}
}
