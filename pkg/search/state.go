package search

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// URL parameter names.
const (
	ParamQuery  = "q"
	ParamFilter = "f"
	ParamPage   = "p"
)

// State is the complete search state carried by a URL.
type State struct {
	// Query is the trimmed free text query. Empty means no query.
	Query string

	// Filters are the active facet values in the order they were added.
	// They never contain duplicates.
	Filters []string

	// Page is the 1-based current page.
	Page int
}

// ParseState derives a State from URL query parameters. Malformed or
// non-positive pages become 1; blank and repeated filters are dropped.
func ParseState(values url.Values) State {
	s := State{Page: 1}

	if q := values[ParamQuery]; len(q) > 0 {
		s.Query = strings.TrimSpace(q[0])
	}

	for _, f := range values[ParamFilter] {
		f = strings.TrimSpace(f)
		if f == "" || slices.Contains(s.Filters, f) {
			continue
		}
		s.Filters = append(s.Filters, f)
	}

	if p := values[ParamPage]; len(p) > 0 && p[0] != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(p[0])); err == nil && parsed > 0 {
			s.Page = parsed
		}
	}

	return s
}

// ParseQuery parses a raw query string such as "q=go&f=web&p=2".
func ParseQuery(raw string) (State, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return State{Page: 1}, err
	}
	return ParseState(values), nil
}

// Values encodes the state. q is omitted when empty and p when it is 1.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set(ParamQuery, s.Query)
	}
	for _, f := range s.Filters {
		v.Add(ParamFilter, f)
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// Encode returns the state as a URL query string.
func (s State) Encode() string {
	return s.Values().Encode()
}

// Link returns path with the state's query string appended.
func (s State) Link(path string) string {
	if q := s.Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// Equal reports whether two states describe the same page.
func (s State) Equal(o State) bool {
	return s.Query == o.Query && s.Page == o.Page && slices.Equal(s.Filters, o.Filters)
}

// IsActive reports whether value is an active filter.
func (s State) IsActive(value string) bool {
	return slices.Contains(s.Filters, value)
}

func (s State) clone() State {
	s.Filters = slices.Clone(s.Filters)
	return s
}

// SubmitQuery sets the query and returns to the first page. A blank query
// clears it. Filters are kept.
func SubmitQuery(s State, query string) State {
	next := s.clone()
	next.Query = strings.TrimSpace(query)
	next.Page = 1
	return next
}

// ToggleFilter removes value when active and appends it otherwise, returning
// to the first page. The query is kept.
func ToggleFilter(s State, value string) State {
	next := s.clone()
	next.Page = 1

	value = strings.TrimSpace(value)
	if value == "" {
		return next
	}
	if i := slices.Index(next.Filters, value); i >= 0 {
		next.Filters = slices.Delete(next.Filters, i, i+1)
		if len(next.Filters) == 0 {
			next.Filters = nil
		}
		return next
	}
	next.Filters = append(next.Filters, value)
	return next
}

// AddFilter activates value, clears the query and returns to the first page.
// It is the transition applied when a suggestion is accepted.
func AddFilter(s State, value string) State {
	next := s.clone()
	next.Query = ""
	next.Page = 1

	value = strings.TrimSpace(value)
	if value != "" && !slices.Contains(next.Filters, value) {
		next.Filters = append(next.Filters, value)
	}
	return next
}

// ChangePage sets the page only.
func ChangePage(s State, page int) State {
	next := s.clone()
	if page < 1 {
		page = 1
	}
	next.Page = page
	return next
}
