package order

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

// SchemaError reports a backend payload that does not describe a valid order.
type SchemaError struct {
	OrderID string
	Field   string
	Reason  string
}

func (e *SchemaError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("invalid order payload: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid order %s: %s %s", e.OrderID, e.Field, e.Reason)
}
