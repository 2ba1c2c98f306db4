package models

import (
	"errors"
	"fmt"
)

// ErrInvalidProduct matches every product validation failure via errors.Is.
var ErrInvalidProduct = errors.New("invalid product")

// Conditions reported by InvalidProductError.
const (
	ConditionEmpty          = "empty"
	ConditionTooLong        = "too_long"
	ConditionNegative       = "negative"
	ConditionNotFinite      = "not_finite"
	ConditionNegativeResult = "negative_result"
)

// InvalidProductError is returned when a product field or stock change
// violates a catalog rule. The entity is never modified when it is returned.
type InvalidProductError struct {
	Field     string // name, price, stock, category or description
	Condition string // one of the Condition* constants
	Value     any    // offending input
	Message   string
}

func (e *InvalidProductError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidProduct) hold for any InvalidProductError.
func (e *InvalidProductError) Is(target error) bool {
	return target == ErrInvalidProduct
}

func invalid(field, condition string, value any, format string, args ...any) *InvalidProductError {
	return &InvalidProductError{
		Field:     field,
		Condition: condition,
		Value:     value,
		Message:   fmt.Sprintf(format, args...),
	}
}

// AsInvalidProduct unwraps err into an InvalidProductError if there is one in its chain.
func AsInvalidProduct(err error) (*InvalidProductError, bool) {
	var invalidErr *InvalidProductError
	if errors.As(err, &invalidErr) {
		return invalidErr, true
	}
	return nil, false
}
