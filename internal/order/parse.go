package order

import (
	"bytes"
	"encoding/json"
	"fmt"

	"marketplace-admin/internal/api"
)

// Validate checks the structural invariants of an order received from the backend.
func (o *Order) Validate() error {
	if o.ID == "" {
		return &SchemaError{Field: "_id", Reason: "is required"}
	}
	if o.OrderNumber == "" {
		return &SchemaError{OrderID: o.ID, Field: "orderNumber", Reason: "is required"}
	}
	if o.TotalAmount.IsNegative() {
		return &SchemaError{OrderID: o.ID, Field: "totalAmount", Reason: "must not be negative"}
	}
	for i, it := range o.Items {
		if it.Quantity < 1 {
			return &SchemaError{OrderID: o.ID, Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must be at least 1"}
		}
		if it.Price.IsNegative() {
			return &SchemaError{OrderID: o.ID, Field: fmt.Sprintf("items[%d].price", i), Reason: "must not be negative"}
		}
	}
	return nil
}

// Parse decodes and validates a single order, bare or wrapped as {"order": {...}}.
func Parse(raw json.RawMessage) (*Order, error) {
	body, err := api.UnwrapObject(raw, "order")
	if err != nil {
		return nil, err
	}
	var o Order
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

// ParseUpdated decodes the answer to a status update. The backend may reply
// with the updated order or with a bare acknowledgement such as
// {"message": "..."} or an empty body; an acknowledgement yields a nil order.
// A body that carries an order is held to the same checks as Parse.
func ParseUpdated(raw json.RawMessage) (*Order, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}
	body, err := api.UnwrapObject(trimmed, "order")
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	if _, ok := fields["_id"]; !ok {
		return nil, nil
	}
	return Parse(body)
}

// ParseList decodes and validates an order list, bare or wrapped as {"orders": [...]}.
func ParseList(raw json.RawMessage) ([]Order, error) {
	body, err := api.UnwrapList(raw, "orders")
	if err != nil {
		return nil, err
	}
	var orders []Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	for i := range orders {
		if err := orders[i].Validate(); err != nil {
			return nil, err
		}
	}
	return orders, nil
}
