package index

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Fallback search configuration for indexes that carry none.
var (
	DefaultKeys = []WeightedKey{
		{Name: "title", Weight: 3},
		{Name: "tags", Weight: 2},
		{Name: "text", Weight: 1},
	}
	DefaultFilter = "tags"
	DefaultView   = "list"
)

// WeightedKey configures the relative importance of a field to the engine.
type WeightedKey struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Manifest is an index document adapted to a single shape.
type Manifest struct {
	Documents []Document
	Keys      []WeightedKey
	Filter    string
	View      string
}

type objectShape struct {
	Index  []json.RawMessage `json:"index"`
	Keys   []WeightedKey     `json:"keys"`
	Filter string            `json:"filter"`
	View   string            `json:"view"`
}

// Parse decodes data as either a bare array of documents or an
// {index, keys, filter, view} object. Settings missing from the document are
// taken from defaults, then from the package fallbacks.
func Parse(data []byte, defaults Manifest) (*Manifest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidIndex)
	}

	m := &Manifest{
		Keys:   defaults.Keys,
		Filter: defaults.Filter,
		View:   defaults.View,
	}

	var raw []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
		}
	case '{':
		var obj objectShape
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidIndex, err)
		}
		if obj.Index == nil {
			return nil, fmt.Errorf("%w: missing \"index\" array", ErrInvalidIndex)
		}
		raw = obj.Index
		if len(obj.Keys) > 0 {
			m.Keys = obj.Keys
		}
		if obj.Filter != "" {
			m.Filter = obj.Filter
		}
		if obj.View != "" {
			m.View = obj.View
		}
	default:
		return nil, fmt.Errorf("%w: expected an array or an object", ErrInvalidIndex)
	}

	m.Documents = make([]Document, 0, len(raw))
	for i, r := range raw {
		var fields map[string]any
		if err := json.Unmarshal(r, &fields); err != nil || fields == nil {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrInvalidIndex, i)
		}
		m.Documents = append(m.Documents, NewDocument(fields, i))
	}

	if len(m.Keys) == 0 {
		m.Keys = DefaultKeys
	}
	m.Keys = normalizeKeys(m.Keys)
	if m.Filter == "" {
		m.Filter = DefaultFilter
	}
	if m.View == "" {
		m.View = DefaultView
	}

	return m, nil
}

func normalizeKeys(keys []WeightedKey) []WeightedKey {
	out := make([]WeightedKey, 0, len(keys))
	for _, k := range keys {
		if k.Name == "" {
			continue
		}
		if k.Weight <= 0 {
			k.Weight = 1
		}
		out = append(out, k)
	}
	return out
}
