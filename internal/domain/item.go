package domain

// ItemKind classifies a sellable line in the cart and on receipts.
type ItemKind string

const (
	KindPizza        ItemKind = "pizza"
	KindDeliveryZone ItemKind = "deliveryZone"
	KindBeverage     ItemKind = "beverage"
	KindHalfAndHalf  ItemKind = "halfAndHalfPizza"
	KindAddOn        ItemKind = "addOn"
	KindBox          ItemKind = "box"
)

// ValidKind reports whether k names a catalog kind.
func ValidKind(k ItemKind) bool {
	switch k {
	case KindPizza, KindDeliveryZone, KindBeverage, KindHalfAndHalf, KindAddOn, KindBox:
		return true
	}
	return false
}

// ParentCapable reports whether lines of this kind can carry add-ons.
// Removing a parent-capable line removes its add-ons with it.
func (k ItemKind) ParentCapable() bool {
	return k == KindPizza || k == KindHalfAndHalf
}

// PizzaFamily reports whether the kind earns loyalty points at checkout.
func (k ItemKind) PizzaFamily() bool {
	return k == KindPizza || k == KindHalfAndHalf
}

// Size is a pizza size. Flat-priced kinds carry no size.
type Size string

const (
	SizeLarge  Size = "large"
	SizeMedium Size = "medium"
	SizeSmall  Size = "small"
)

// ValidSize reports whether s is one of the three menu sizes.
func ValidSize(s Size) bool {
	return s == SizeLarge || s == SizeMedium || s == SizeSmall
}

// Half names one half of a half-and-half pizza together with the price that
// half would have cost as a whole pizza, in codec form.
type Half struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// LineItem is one row of the active cart. ID is derived from the line's
// identity key, so re-adding an equivalent item lands on the same row.
type LineItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      string   `json:"price"`
	UnitAmount int64    `json:"unitAmount"`
	Kind       ItemKind `json:"kind"`
	Size       Size     `json:"size,omitempty"`
	FirstHalf  *Half    `json:"firstHalf,omitempty"`
	SecondHalf *Half    `json:"secondHalf,omitempty"`
	ParentID   string   `json:"parentId,omitempty"`
	Quantity   int      `json:"quantity"`
}
