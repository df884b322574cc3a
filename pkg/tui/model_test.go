package tui

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/search"
)

const corpus = `[
	{"title": "Go tour", "tags": ["golang", "web"], "weight": 3, "text": "A tour of Go"},
	{"title": "Rust book", "tags": ["rust"], "weight": 2},
	{"title": "HTTP servers", "tags": ["web"], "weight": 1}
]`

func newModel(t *testing.T, perPage int) (*Model, *search.History) {
	t.Helper()
	m, err := index.Parse([]byte(corpus), index.Manifest{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	store := index.NewStore(m, "test")
	hist := search.NewHistory("/search", search.State{Page: 1})
	ctrl := search.NewController(func() *index.Store { return store }, hist, search.Options{
		PerPage: perPage,
		Widget:  config.WidgetConfig{Suggestions: true},
	})
	return New(ctrl, "seek"), hist
}

func send(m *Model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: t}
}

func titlesOf(v search.View) []string {
	out := make([]string, len(v.Items))
	for i, d := range v.Items {
		out[i] = d.Title()
	}
	return out
}

func TestTypingRefreshesSuggestions(t *testing.T) {
	m, _ := newModel(t, 9)

	send(m, typeText("g"))
	if items, _ := m.Suggestions(); len(items) != 0 {
		t.Errorf("one character must not suggest, got %v", items)
	}

	send(m, typeText("o"))
	items, selected := m.Suggestions()
	if !reflect.DeepEqual(items, []string{"golang"}) || selected != -1 {
		t.Errorf("suggestions = %v (selected %d)", items, selected)
	}
}

func TestEnterAcceptsHighlightedSuggestion(t *testing.T) {
	m, hist := newModel(t, 9)

	send(m, typeText("go"), keyOf(tea.KeyDown), keyOf(tea.KeyEnter))

	v := m.SearchView()
	if !reflect.DeepEqual(v.Active, []string{"golang"}) {
		t.Fatalf("active filters = %v", v.Active)
	}
	if v.State.Query != "" || m.Input() != "" {
		t.Errorf("accepting a suggestion must clear the query, got %q", v.State.Query)
	}
	if got := titlesOf(v); !reflect.DeepEqual(got, []string{"Go tour"}) {
		t.Errorf("results = %v", got)
	}
	if hist.URL() != "/search?f=golang" {
		t.Errorf("URL = %q", hist.URL())
	}
	if items, _ := m.Suggestions(); len(items) != 0 {
		t.Errorf("suggestions should be dismissed, got %v", items)
	}
}

func TestEnterSubmitsWithoutHighlight(t *testing.T) {
	m, _ := newModel(t, 9)

	send(m, typeText("rust"), keyOf(tea.KeyEnter))

	v := m.SearchView()
	if v.State.Query != "rust" || len(v.Active) != 0 {
		t.Errorf("unexpected state %+v", v.State)
	}
	if got := titlesOf(v); !reflect.DeepEqual(got, []string{"Rust book"}) {
		t.Errorf("results = %v", got)
	}
}

func TestPaging(t *testing.T) {
	m, _ := newModel(t, 2)

	if v := m.SearchView(); v.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", v.TotalPages)
	}

	send(m, keyOf(tea.KeyCtrlN))
	if got := titlesOf(m.SearchView()); !reflect.DeepEqual(got, []string{"HTTP servers"}) {
		t.Errorf("page 2 = %v", got)
	}

	send(m, keyOf(tea.KeyCtrlN))
	if p := m.SearchView().State.Page; p != 2 {
		t.Errorf("paging past the end moved to %d", p)
	}

	send(m, keyOf(tea.KeyPgUp), keyOf(tea.KeyPgUp))
	if p := m.SearchView().State.Page; p != 1 {
		t.Errorf("page = %d, want 1", p)
	}
}

func TestClearFilterDropsLast(t *testing.T) {
	m, _ := newModel(t, 9)

	send(m, typeText("go"), keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	send(m, typeText("we"), keyOf(tea.KeyDown), keyOf(tea.KeyEnter))
	if v := m.SearchView(); !reflect.DeepEqual(v.Active, []string{"golang", "web"}) {
		t.Fatalf("active = %v", v.Active)
	}

	send(m, keyOf(tea.KeyCtrlX))
	if v := m.SearchView(); !reflect.DeepEqual(v.Active, []string{"golang"}) {
		t.Errorf("active = %v, want [golang]", v.Active)
	}
}

func TestHistoryNavigation(t *testing.T) {
	m, _ := newModel(t, 9)

	send(m, typeText("rust"), keyOf(tea.KeyEnter))
	send(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})

	if v := m.SearchView(); v.State.Query != "" || m.Input() != "" {
		t.Errorf("back should restore the empty query, got %q", v.State.Query)
	}

	send(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if v := m.SearchView(); v.State.Query != "rust" || m.Input() != "rust" {
		t.Errorf("forward should restore the query, got %q", v.State.Query)
	}
}

func TestIndexReloaded(t *testing.T) {
	m, _ := newModel(t, 9)

	send(m, IndexReloaded{Event: index.ReloadEvent{Err: errors.New("timeout")}})
	if !strings.Contains(m.View(), "reload failed: timeout") {
		t.Error("expected the reload failure in the status line")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, 9)

	_, cmd := m.Update(keyOf(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should quit")
	}
}

func TestViewRendersResults(t *testing.T) {
	m, _ := newModel(t, 9)
	out := m.View()

	for _, want := range []string{"seek", "Go tour", "Rust book", "golang, web"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
