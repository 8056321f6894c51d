package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// listWrapperKeys are the envelope fields list endpoints have been seen
// wrapping their arrays in, probed in order.
var listWrapperKeys = []string{"content", "data", "items", "results", "motos", "patios"}

// normalizeList reduces the union of list response shapes to a single JSON
// array: a bare array passes through, a wrapping object is unwrapped, and an
// empty or null body becomes an empty array.
func normalizeList(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return json.RawMessage("[]"), nil
	}

	if trimmed[0] == '[' {
		return trimmed, nil
	}

	if trimmed[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode list envelope: %w", err)
		}
		for _, key := range listWrapperKeys {
			inner := bytes.TrimSpace(envelope[key])
			if len(inner) > 0 && inner[0] == '[' {
				return inner, nil
			}
		}
		return nil, fmt.Errorf("list response object has no recognized array field")
	}

	return nil, fmt.Errorf("unexpected list response shape")
}

// unmarshalEntity decodes a single-entity response, unwrapping a {"data":…}
// envelope when present.
func unmarshalEntity(raw json.RawMessage, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err == nil {
			inner := bytes.TrimSpace(envelope.Data)
			if len(inner) > 0 && inner[0] == '{' {
				return json.Unmarshal(inner, out)
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}
