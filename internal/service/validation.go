package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports input that an operation refuses to work with.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var (
	// ErrEmptyIngredients is returned for a nil or empty ingredient list.
	ErrEmptyIngredients = NewValidationError("ingredients", "ingredient list cannot be empty")

	// ErrAssemblyFailed wraps every failure contained by the order assembler.
	ErrAssemblyFailed = errors.New("burger assembly failed")
)

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidatePrices checks a price table before it is frozen.
func ValidatePrices(prices map[string]decimal.Decimal) error {
	if len(prices) == 0 {
		return NewValidationError("prices", "price table cannot be empty")
	}
	for name, price := range prices {
		if name == "" {
			return NewValidationError("prices", "ingredient name is required")
		}
		if price.IsNegative() {
			return NewValidationError("prices", fmt.Sprintf("price for %q cannot be negative", name))
		}
	}
	return nil
}
