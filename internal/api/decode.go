package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnwrapList returns the JSON array held by raw. The backend answers some
// list endpoints with a bare array and others with an object such as
// {"orders": [...]}; the first of keys that holds an array wins.
func UnwrapList(raw json.RawMessage, keys ...string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("[]"), nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("unexpected list payload: %w", err)
	}
	for _, k := range append(keys, "data") {
		if v, ok := obj[k]; ok {
			v = bytes.TrimSpace(v)
			if len(v) > 0 && v[0] == '[' {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("unexpected list payload: none of %v holds an array", keys)
}

// UnwrapObject is UnwrapList for single records: {"order": {...}} or a bare object.
func UnwrapObject(raw json.RawMessage, keys ...string) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("unexpected object payload")
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("unexpected object payload: %w", err)
	}
	for _, k := range append(keys, "data") {
		if v, ok := obj[k]; ok {
			v = bytes.TrimSpace(v)
			if len(v) > 0 && v[0] == '{' {
				return v, nil
			}
		}
	}
	return trimmed, nil
}
