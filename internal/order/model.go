package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentBank   PaymentMethod = "bank"
)

type Status string

const (
	StatusPending         Status = "pending"
	StatusConfirmed       Status = "confirmed"
	StatusTransferPending Status = "transfer_pending"
	StatusShipped         Status = "shipped"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
)

type DeliveryMethod string

const (
	DeliveryStore     DeliveryMethod = "store"
	DeliveryHome      DeliveryMethod = "home"
	DeliveryDifferent DeliveryMethod = "different"
	DeliveryUber      DeliveryMethod = "Uber"
	DeliveryPickMe    DeliveryMethod = "PickMe"
)

// Carriers are the third-party delivery providers an admin can assign.
var Carriers = []DeliveryMethod{DeliveryUber, DeliveryPickMe}

// IsCarrier reports whether d is a third-party carrier.
func (d DeliveryMethod) IsCarrier() bool {
	return d == DeliveryUber || d == DeliveryPickMe
}

type Customer struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Item struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
}

// Subtotal is Price * Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID             string          `json:"_id"`
	OrderNumber    string          `json:"orderNumber"`
	Customer       Customer        `json:"user"`
	Items          []Item          `json:"items"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod"`
	Status         Status          `json:"status"`
	DeliveryMethod DeliveryMethod  `json:"deliveryMethod"`
	Address        string          `json:"address,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// StatusUpdate is the body of PUT /api/orders/{id}/status.
type StatusUpdate struct {
	Status         Status         `json:"status"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod,omitempty"`
}
