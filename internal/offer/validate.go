package offer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"marketplace-admin/internal/api"
)

// Validate checks a submission against today's date in the location of now.
func (in *Input) Validate(now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)

	if in.Title == "" {
		return api.Invalid("title", "is required")
	}
	if !in.PricePerUnit.IsPositive() {
		return api.Invalid("pricePerUnit", "must be greater than zero")
	}
	if in.Quantity < 1 {
		return api.Invalid("quantity", "must be at least 1")
	}
	if in.DeliveryDate.IsZero() {
		return api.Invalid("deliveryDate", "is required")
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if in.DeliveryDate.Before(today) {
		return api.Invalid("deliveryDate", "must not be in the past")
	}
	return nil
}

func (o *Offer) validate() error {
	if o.ID == "" {
		return fmt.Errorf("invalid offer payload: _id is required")
	}
	if _, known := validNext[o.Status]; !known {
		return fmt.Errorf("invalid offer %s: unknown status %q", o.ID, o.Status)
	}
	return nil
}

func parseOffer(raw json.RawMessage) (*Offer, error) {
	body, err := api.UnwrapObject(raw, "offer")
	if err != nil {
		return nil, err
	}
	var o Offer
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("decode offer: %w", err)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func parseOffers(raw json.RawMessage) ([]Offer, error) {
	body, err := api.UnwrapList(raw, "offers")
	if err != nil {
		return nil, err
	}
	var offers []Offer
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	for i := range offers {
		if err := offers[i].validate(); err != nil {
			return nil, err
		}
	}
	return offers, nil
}
