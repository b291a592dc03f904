package stock

import "github.com/shopspring/decimal"

type Status string

const (
	StatusOutOfStock Status = "Out of Stock"
	StatusLowStock   Status = "Low Stock"
	StatusInStock    Status = "In Stock"
)

// Item is an inventory record. Its Status is derived, never stored.
type Item struct {
	ID           string          `json:"_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorderLevel"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
}

func (it Item) Status() Status {
	switch {
	case it.Quantity <= 0:
		return StatusOutOfStock
	case it.Quantity <= it.ReorderLevel:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Value is Price * Quantity.
func (it Item) Value() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Input is the body of create and update calls.
type Input struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorderLevel"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description,omitempty"`
	Supplier     string          `json:"supplier,omitempty"`
}
