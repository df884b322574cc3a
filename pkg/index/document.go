package index

import (
	"encoding/json"
	"fmt"
)

// Document is one corpus entry backed by its decoded JSON object. Fields the
// search core does not know about are passed through untouched.
type Document struct {
	fields   map[string]any
	position int
}

// NewDocument wraps fields as a document at the given corpus position.
func NewDocument(fields map[string]any, position int) Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return Document{fields: fields, position: position}
}

// Position is the document's encounter order in the corpus.
func (d Document) Position() int {
	return d.position
}

func (d Document) Title() string {
	return d.String("title")
}

// Weight returns the ranking weight. Missing or non-numeric weights are 0.
func (d Document) Weight() float64 {
	switch v := d.fields["weight"].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case int:
		return float64(v)
	}
	return 0
}

// String returns field as a string. Non-string scalars are formatted.
func (d Document) String(field string) string {
	switch v := d.fields[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool, json.Number, int:
		return fmt.Sprint(v)
	}
	return ""
}

// Strings returns field as a list of strings: a single string becomes a
// one-element list, an array yields its string elements and anything else
// is empty.
func (d Document) Strings(field string) []string {
	switch v := d.fields[field].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Facets returns the document's values for the facet field. A missing field
// is an empty facet set.
func (d Document) Facets(field string) []string {
	if field == "" {
		return nil
	}
	return d.Strings(field)
}

// HasFacets reports whether every value is present in the facet field.
func (d Document) HasFacets(field string, values []string) bool {
	facets := d.Facets(field)
	if len(facets) == 0 {
		return len(values) == 0
	}
	for _, v := range values {
		found := false
		for _, f := range facets {
			if f == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Has reports whether field is present.
func (d Document) Has(field string) bool {
	_, ok := d.fields[field]
	return ok
}

// Fields returns a shallow copy of the underlying JSON object.
func (d Document) Fields() map[string]any {
	out := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.fields)
}
