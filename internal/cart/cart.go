// Package cart holds the active order being composed at the till: line items
// keyed by identity, add-ons scoped to their parent lines, and the running
// totals. The store performs no I/O; whoever composes the checkout flow owns
// a Cart value and injects it where needed.
package cart

import (
	"hash/fnv"
	"io"
	"strconv"

	"kantinho-pos/internal/domain"
	"kantinho-pos/internal/price"
)

// Candidate describes an item about to enter the cart. Quantity and line id
// are derived by the store, never supplied by callers.
type Candidate struct {
	Name       string          `json:"name"`
	Price      string          `json:"price"`
	Kind       domain.ItemKind `json:"kind"`
	Size       domain.Size     `json:"size,omitempty"`
	FirstHalf  *domain.Half    `json:"firstHalf,omitempty"`
	SecondHalf *domain.Half    `json:"secondHalf,omitempty"`
}

// identity is the composite key deciding merge-vs-new-line. Equality is Go
// struct equality, so separator characters inside names cannot cause two
// distinct items to collide.
type identity struct {
	kind       domain.ItemKind
	name       string
	size       domain.Size
	firstHalf  string
	secondHalf string
	parentID   string
}

func identityFor(c Candidate) identity {
	id := identity{kind: c.Kind, name: c.Name, size: c.Size}
	if c.Kind == domain.KindHalfAndHalf && c.FirstHalf != nil && c.SecondHalf != nil {
		// Half order matters: A/B and B/A are distinct lines.
		id.firstHalf = c.FirstHalf.Name
		id.secondHalf = c.SecondHalf.Name
	}
	return id
}

func extraIdentityFor(c Candidate, parentID string) identity {
	return identity{kind: domain.KindAddOn, name: c.Name, parentID: parentID}
}

// lineID derives a stable, URL-safe handle from the identity key. Fields are
// length-prefixed before hashing so concatenation ambiguity cannot produce
// the same handle for two different keys.
func (id identity) lineID() string {
	h := fnv.New64a()
	for _, f := range []string{string(id.kind), id.name, string(id.size), id.firstHalf, id.secondHalf, id.parentID} {
		io.WriteString(h, strconv.Itoa(len(f)))
		io.WriteString(h, ":")
		io.WriteString(h, f)
	}
	return string(id.kind) + "-" + strconv.FormatUint(h.Sum64(), 16)
}

// Cart is the mutable line-item collection. It is not safe for concurrent
// use; the owning service serializes access.
type Cart struct {
	lines       []*domain.LineItem
	index       map[identity]*domain.LineItem
	byLineID    map[string]identity
	totalItems  int
	totalAmount int64
}

func New() *Cart {
	return &Cart{
		index:    make(map[identity]*domain.LineItem),
		byLineID: make(map[string]identity),
	}
}

// AddItem merges the candidate into an existing line with the same identity,
// or appends a new line with quantity 1.
func (c *Cart) AddItem(cand Candidate) {
	c.upsert(identityFor(cand), cand, "")
}

// AddExtraToItem attaches an add-on candidate to the line identified by
// parentID. The same add-on under two different parents stays two independent
// lines. A missing parent makes this a no-op rather than an error, so stale
// UI actions cannot leave dangling add-ons behind.
func (c *Cart) AddExtraToItem(parentID string, cand Candidate) {
	if _, ok := c.byLineID[parentID]; !ok {
		return
	}
	cand.Kind = domain.KindAddOn
	c.upsert(extraIdentityFor(cand, parentID), cand, parentID)
}

func (c *Cart) upsert(id identity, cand Candidate, parentID string) {
	if line, ok := c.index[id]; ok {
		line.Quantity++
		c.recompute()
		return
	}
	line := &domain.LineItem{
		ID:         id.lineID(),
		Name:       cand.Name,
		Price:      cand.Price,
		UnitAmount: price.Parse(cand.Price),
		Kind:       cand.Kind,
		Size:       cand.Size,
		FirstHalf:  cand.FirstHalf,
		SecondHalf: cand.SecondHalf,
		ParentID:   parentID,
		Quantity:   1,
	}
	c.lines = append(c.lines, line)
	c.index[id] = line
	c.byLineID[line.ID] = id
	c.recompute()
}

// UpdateQuantity sets the quantity of a line. Zero or negative removes the
// line (cascading like RemoveItem). Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return
	}
	id, ok := c.byLineID[lineID]
	if !ok {
		return
	}
	c.index[id].Quantity = quantity
	c.recompute()
}

// RemoveItem deletes a line. When the removed line is parent-capable, every
// add-on referencing it is removed in the same operation. Unknown ids are a
// no-op.
func (c *Cart) RemoveItem(lineID string) {
	id, ok := c.byLineID[lineID]
	if !ok {
		return
	}
	removed := c.index[id]
	c.drop(id)
	if removed.Kind.ParentCapable() {
		for _, line := range c.snapshotLines() {
			if line.ParentID == lineID {
				c.drop(c.byLineID[line.ID])
			}
		}
	}
	c.recompute()
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[identity]*domain.LineItem)
	c.byLineID = make(map[string]identity)
	c.recompute()
}

func (c *Cart) drop(id identity) {
	line, ok := c.index[id]
	if !ok {
		return
	}
	delete(c.index, id)
	delete(c.byLineID, line.ID)
	for i, l := range c.lines {
		if l == line {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

func (c *Cart) snapshotLines() []*domain.LineItem {
	out := make([]*domain.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// recompute rebuilds both aggregates from the full line list. Called after
// every mutation; nothing is cached across mutations.
func (c *Cart) recompute() {
	c.totalItems = 0
	c.totalAmount = 0
	for _, line := range c.lines {
		c.totalItems += line.Quantity
		c.totalAmount += line.UnitAmount * int64(line.Quantity)
	}
}

// Items returns the lines in insertion order. The slice and its elements are
// copies; mutating them does not touch the store.
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	return out
}

// Get returns a copy of the line with the given id.
func (c *Cart) Get(lineID string) (domain.LineItem, bool) {
	id, ok := c.byLineID[lineID]
	if !ok {
		return domain.LineItem{}, false
	}
	return *c.index[id], true
}

// TotalItems is the sum of all quantities, add-ons included.
func (c *Cart) TotalItems() int { return c.totalItems }

// TotalAmount is the sum of unit amount times quantity over every line.
func (c *Cart) TotalAmount() int64 { return c.totalAmount }

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool { return len(c.lines) == 0 }
