package finance

import (
	"encoding/json"
	"fmt"
	"strings"

	"marketplace-admin/internal/api"
)

func (in *Input) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	switch {
	case !in.Type.Valid():
		return api.Invalid("type", "must be Income or Expense")
	case !in.Amount.IsPositive():
		return api.Invalid("amount", "must be greater than zero")
	case in.Description == "":
		return api.Invalid("description", "is required")
	case in.Category == "":
		return api.Invalid("category", "is required")
	case in.Date.IsZero():
		return api.Invalid("date", "is required")
	}
	return nil
}

func (e *Entry) validate() error {
	if e.ID == "" {
		return fmt.Errorf("invalid finance payload: _id is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("invalid finance entry %s: unknown type %q", e.ID, e.Type)
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("invalid finance entry %s: negative amount", e.ID)
	}
	return nil
}

func parseEntries(raw json.RawMessage) ([]Entry, error) {
	body, err := api.UnwrapList(raw, "entries", "finances", "finance")
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode finance entries: %w", err)
	}
	for i := range entries {
		if err := entries[i].validate(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func parseEntry(raw json.RawMessage) (*Entry, error) {
	body, err := api.UnwrapObject(raw, "entry", "finance")
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("decode finance entry: %w", err)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
