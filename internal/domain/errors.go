package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrWishlistNotFound = errors.New("wishlist not found")
	ErrNameRequired     = errors.New("wishlist name is required")
	ErrUserRequired     = errors.New("wishlist user is required")
)

// ValidationError reports a payload that cannot be deserialized into a
// Wishlist. Field is empty when the payload is not an object at all.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid wishlist: body of request contained bad or no data"
	}
	return fmt.Sprintf("invalid wishlist: missing %s", e.Field)
}

// NewMissingFieldError creates a ValidationError naming the missing field.
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// NewMalformedPayloadError creates a ValidationError for a payload that is
// not a key/value structure.
func NewMalformedPayloadError() *ValidationError {
	return &ValidationError{}
}
