package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when checkout is attempted with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalid indicates the caller supplied an input that fails validation.
	ErrInvalid = errors.New("invalid input")
)
