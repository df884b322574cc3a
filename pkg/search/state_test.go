package search

import (
	"net/url"
	"reflect"
	"testing"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected State
	}{
		{
			name:     "defaults when no params",
			query:    "",
			expected: State{Page: 1},
		},
		{
			name:     "query filters and page",
			query:    "q=golang&f=web&f=cli&p=3",
			expected: State{Query: "golang", Filters: []string{"web", "cli"}, Page: 3},
		},
		{
			name:     "query is trimmed",
			query:    "q=%20%20go%20",
			expected: State{Query: "go", Page: 1},
		},
		{
			name:     "blank query is absent",
			query:    "q=%20%20",
			expected: State{Page: 1},
		},
		{
			name:     "only the first query counts",
			query:    "q=one&q=two",
			expected: State{Query: "one", Page: 1},
		},
		{
			name:     "non numeric page defaults to 1",
			query:    "p=abc",
			expected: State{Page: 1},
		},
		{
			name:     "zero page defaults to 1",
			query:    "p=0",
			expected: State{Page: 1},
		},
		{
			name:     "negative page defaults to 1",
			query:    "p=-4",
			expected: State{Page: 1},
		},
		{
			name:     "partially numeric page defaults to 1",
			query:    "p=2x",
			expected: State{Page: 1},
		},
		{
			name:     "duplicate and blank filters are dropped",
			query:    "f=x&f=&f=y&f=x",
			expected: State{Filters: []string{"x", "y"}, Page: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("Failed to parse query string: %v", err)
			}

			got := ParseState(values)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestStateRoundTrip(t *testing.T) {
	states := []State{
		{Page: 1},
		{Query: "alpha", Page: 1},
		{Query: "multi word query", Filters: []string{"b", "a"}, Page: 7},
		{Filters: []string{"c++", "a&b", "x=y"}, Page: 2},
		{Query: "ñandú", Filters: []string{"música"}, Page: 1},
	}

	for _, s := range states {
		got := ParseState(s.Values())
		if !got.Equal(s) {
			t.Errorf("round trip: expected %+v, got %+v", s, got)
		}

		parsed, err := ParseQuery(s.Encode())
		if err != nil {
			t.Fatalf("ParseQuery(%q): %v", s.Encode(), err)
		}
		if !parsed.Equal(s) {
			t.Errorf("ParseQuery round trip: expected %+v, got %+v", s, parsed)
		}
	}
}

func TestValuesOmitsDefaults(t *testing.T) {
	v := State{Page: 1}.Values()
	if len(v) != 0 {
		t.Errorf("expected no parameters, got %v", v)
	}
	if got := (State{Page: 1}).Link("/search"); got != "/search" {
		t.Errorf("Link = %q, want /search", got)
	}
	if got := (State{Query: "go", Page: 2}).Link("/search"); got != "/search?p=2&q=go" {
		t.Errorf("Link = %q", got)
	}
}

func TestSubmitQuery(t *testing.T) {
	s := State{Query: "old", Filters: []string{"x"}, Page: 4}

	next := SubmitQuery(s, " new ")
	want := State{Query: "new", Filters: []string{"x"}, Page: 1}
	if !next.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, next)
	}
	if !s.Equal(State{Query: "old", Filters: []string{"x"}, Page: 4}) {
		t.Errorf("input state was modified: %+v", s)
	}

	if cleared := SubmitQuery(s, "   "); cleared.Query != "" {
		t.Errorf("blank query should clear q, got %q", cleared.Query)
	}
}

func TestToggleFilter(t *testing.T) {
	s := State{Query: "q", Filters: []string{"a", "b"}, Page: 3}

	added := ToggleFilter(s, "c")
	if !reflect.DeepEqual(added.Filters, []string{"a", "b", "c"}) {
		t.Errorf("add: got %v", added.Filters)
	}
	if added.Page != 1 || added.Query != "q" {
		t.Errorf("add: expected page 1 and query kept, got %+v", added)
	}

	removed := ToggleFilter(s, "a")
	if !reflect.DeepEqual(removed.Filters, []string{"b"}) {
		t.Errorf("remove: got %v", removed.Filters)
	}
	if !reflect.DeepEqual(s.Filters, []string{"a", "b"}) {
		t.Errorf("input filters were modified: %v", s.Filters)
	}

	again := ToggleFilter(ToggleFilter(s, "c"), "c")
	if !again.Equal(State{Query: "q", Filters: []string{"a", "b"}, Page: 1}) {
		t.Errorf("toggling twice should restore filters, got %+v", again)
	}
}

func TestAddFilter(t *testing.T) {
	s := State{Query: "ap", Filters: []string{"x"}, Page: 2}

	next := AddFilter(s, "apricot")
	want := State{Filters: []string{"x", "apricot"}, Page: 1}
	if !next.Equal(want) {
		t.Errorf("expected %+v, got %+v", want, next)
	}

	dup := AddFilter(next, "x")
	if !reflect.DeepEqual(dup.Filters, []string{"x", "apricot"}) {
		t.Errorf("adding an active filter must not duplicate it, got %v", dup.Filters)
	}
}

func TestChangePage(t *testing.T) {
	s := State{Query: "q", Filters: []string{"a"}, Page: 1}

	next := ChangePage(s, 5)
	if !next.Equal(State{Query: "q", Filters: []string{"a"}, Page: 5}) {
		t.Errorf("got %+v", next)
	}
	if ChangePage(s, 0).Page != 1 {
		t.Error("page below 1 should become 1")
	}
}
