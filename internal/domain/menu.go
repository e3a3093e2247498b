package domain

import "time"

// MenuItem is one sellable entry of the catalog. Pizzas are priced per size;
// every other kind carries a single flat price. Amounts are integer minor
// units; codec strings are rendered only at the API boundary.
type MenuItem struct {
	ID          string         `json:"id"`
	Kind        ItemKind       `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Price       int64          `json:"price,omitempty"`
	Prices      map[Size]int64 `json:"prices,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// PriceOf returns the amount for the given size, or the flat price for
// kinds without sizes. Unknown sizes resolve to 0.
func (m MenuItem) PriceOf(size Size) int64 {
	if len(m.Prices) == 0 {
		return m.Price
	}
	return m.Prices[size]
}
