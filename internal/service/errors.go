package service

import "fmt"

// ValidationError reports rejected shopper input or an operation whose
// precondition does not hold. It never changes order state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var (
	ErrEmptyOrder      = &ValidationError{Field: "items", Reason: "no items"}
	ErrMissingSize     = &ValidationError{Field: "size", Reason: "a size must be selected"}
	ErrUnknownSize     = &ValidationError{Field: "size", Reason: "unknown size"}
	ErrInvalidQuantity = &ValidationError{Field: "quantity", Reason: "quantity must be a positive whole number within the allowed range"}
	ErrUnknownTopping  = &ValidationError{Field: "toppings", Reason: "unknown topping"}
)
