package offer

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a supplier's proposal to deliver goods to the marketplace.
type Offer struct {
	ID           string          `json:"_id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Quantity     int             `json:"quantity"`
	DeliveryDate time.Time       `json:"deliveryDate"`
	Status       Status          `json:"status"`
	Supplier     string          `json:"supplier,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Total is PricePerUnit * Quantity.
func (o Offer) Total() decimal.Decimal {
	return o.PricePerUnit.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// Input is a supplier submission.
type Input struct {
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Quantity     int             `json:"quantity"`
	DeliveryDate time.Time       `json:"deliveryDate"`
}
