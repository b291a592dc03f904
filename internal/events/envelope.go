package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventDeliveryAssigned = "DeliveryAssigned"
	EventOfferDecided     = "OfferDecided"
)

// Envelope wraps every event published by the back office.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type DeliveryAssignedPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Carrier     string `json:"carrier"`
	AssignedBy  string `json:"assigned_by"`
}

type OfferDecidedPayload struct {
	OfferID  string `json:"offer_id"`
	Title    string `json:"title"`
	Decision string `json:"decision"`
	Supplier string `json:"supplier,omitempty"`
}

// NewEnvelope builds a version 1 envelope; correlationID is the aggregate id
// and doubles as the partition key.
func NewEnvelope(eventType, correlationID, traceID string, payload any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      "marketplace-admin",
		TraceID:       traceID,
		CorrelationID: correlationID,
		Payload:       body,
	}, nil
}

// UnwrapPayload decodes the payload of an envelope.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(env.Payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}

type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// Nop is the publisher used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Envelope) error { return nil }
