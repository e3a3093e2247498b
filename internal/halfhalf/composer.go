// Package halfhalf implements the two-step flow that builds a half-and-half
// pizza out of two menu pizzas and feeds the result to the cart as a single
// candidate line.
package halfhalf

import (
	"errors"
	"fmt"

	"kantinho-pos/internal/cart"
	"kantinho-pos/internal/domain"
	"kantinho-pos/internal/price"
)

// State of the selection flow.
type State string

const (
	SelectingFirst  State = "selectingFirst"
	SelectingSecond State = "selectingSecond"
)

var (
	// ErrNotReady is returned by Confirm before both halves are chosen.
	ErrNotReady = errors.New("both halves must be chosen")
)

// Composer walks through first-half then second-half selection for one size.
// The second choice is replaceable until Confirm; Back from the second step
// discards the whole selection.
type Composer struct {
	size   domain.Size
	state  State
	first  *domain.MenuItem
	second *domain.MenuItem
}

// New starts a flow for the given pizza size.
func New(size domain.Size) *Composer {
	return &Composer{size: size, state: SelectingFirst}
}

// State returns the current step.
func (c *Composer) State() State { return c.state }

// Size returns the size the flow was started with.
func (c *Composer) Size() domain.Size { return c.size }

// FirstHalf returns the recorded first choice, if any.
func (c *Composer) FirstHalf() *domain.MenuItem { return c.first }

// SecondHalf returns the recorded second choice, if any.
func (c *Composer) SecondHalf() *domain.MenuItem { return c.second }

// Choose records a pizza for the current step. In the first step it advances
// the flow; in the second step it records (or replaces) the second half and
// stays there until Confirm.
func (c *Composer) Choose(p domain.MenuItem) {
	switch c.state {
	case SelectingFirst:
		chosen := p
		c.first = &chosen
		c.state = SelectingSecond
	case SelectingSecond:
		chosen := p
		c.second = &chosen
	}
}

// Back discards the second-step selection and the first half with it,
// returning to the first step. In the first step it does nothing; cancelling
// there is the owner's call.
func (c *Composer) Back() {
	if c.state == SelectingSecond {
		c.Reset()
	}
}

// Reset drops all recorded choices and returns to the first step.
func (c *Composer) Reset() {
	c.first = nil
	c.second = nil
	c.state = SelectingFirst
}

// Confirm emits the composed candidate and resets the flow. The unit price is
// the ceiling of the average of both halves at the chosen size.
func (c *Composer) Confirm() (cart.Candidate, error) {
	if c.state != SelectingSecond || c.first == nil || c.second == nil {
		return cart.Candidate{}, ErrNotReady
	}
	firstPrice := c.first.PriceOf(c.size)
	secondPrice := c.second.PriceOf(c.size)
	unit := (firstPrice + secondPrice + 1) / 2

	cand := cart.Candidate{
		Name:  fmt.Sprintf("Meio a Meio: %s / %s", c.first.Name, c.second.Name),
		Price: price.Format(unit),
		Kind:  domain.KindHalfAndHalf,
		Size:  c.size,
		FirstHalf: &domain.Half{
			Name:  c.first.Name,
			Price: price.Format(firstPrice),
		},
		SecondHalf: &domain.Half{
			Name:  c.second.Name,
			Price: price.Format(secondPrice),
		},
	}
	c.Reset()
	return cand, nil
}
