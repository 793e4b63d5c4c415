package services

import "errors"

var (
	// ErrNotFound covers missing carts, products and cart lines. Cart
	// mutations surface it to the user as a message, never a fatal
	// error.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart rejects checkout before any mutation happens.
	ErrEmptyCart = errors.New("cart is empty")

	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)
