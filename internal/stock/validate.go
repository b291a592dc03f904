package stock

import (
	"encoding/json"
	"fmt"
	"strings"

	"marketplace-admin/internal/api"
)

// Validate runs the form checks done before create or update.
func (in *Input) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return api.Invalid("name", "is required")
	}
	if in.Category == "" {
		return api.Invalid("category", "is required")
	}
	if in.Quantity < 0 {
		return api.Invalid("quantity", "must not be negative")
	}
	if in.ReorderLevel < 0 {
		return api.Invalid("reorderLevel", "must not be negative")
	}
	if !in.Price.IsPositive() {
		return api.Invalid("price", "must be greater than zero")
	}
	return nil
}

func (it *Item) validate() error {
	if it.ID == "" {
		return fmt.Errorf("invalid stock payload: _id is required")
	}
	if it.Quantity < 0 {
		return fmt.Errorf("invalid stock item %s: negative quantity", it.ID)
	}
	return nil
}

func parseItem(raw json.RawMessage) (*Item, error) {
	body, err := api.UnwrapObject(raw, "stock", "item")
	if err != nil {
		return nil, err
	}
	var it Item
	if err := json.Unmarshal(body, &it); err != nil {
		return nil, fmt.Errorf("decode stock item: %w", err)
	}
	if err := it.validate(); err != nil {
		return nil, err
	}
	return &it, nil
}

func parseItems(raw json.RawMessage) ([]Item, error) {
	body, err := api.UnwrapList(raw, "stocks", "stock", "items")
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode stock list: %w", err)
	}
	for i := range items {
		if err := items[i].validate(); err != nil {
			return nil, err
		}
	}
	return items, nil
}
