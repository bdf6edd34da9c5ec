package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an unknown or malformed entity id.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned for any login failure without
	// revealing whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports missing or malformed input. Nothing is mutated
// when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError reports that a product cannot cover the requested
// quantity. Available is the quantity on hand at the time of the check.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity for %s. Available: %d", e.ProductName, e.Available)
}

// InvalidTransitionError reports an order status move that the workflow
// does not permit for the acting role.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// DuplicateError reports a uniqueness violation (email, username, telephone).
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}
