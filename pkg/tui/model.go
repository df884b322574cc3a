// Package tui implements an interactive terminal browser over a search
// Controller. Typing refreshes facet suggestions, arrow keys move the
// highlight and Enter either accepts the highlighted suggestion as a filter
// or submits the input as the query.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/render"
	"github.com/rubiojr/seek/pkg/search"
	"github.com/rubiojr/seek/pkg/suggest"
)

// IndexReloaded tells the model the index behind its controller changed.
type IndexReloaded struct {
	Event index.ReloadEvent
}

// Model is the bubbletea model for the browser.
type Model struct {
	ctrl   *search.Controller
	nav    *suggest.Navigator
	input  textinput.Model
	help   help.Model
	keys   KeyMap
	styles Styles

	title  string
	view   search.View
	status string
	width  int
}

// New builds a model over ctrl. The input starts with the stored query.
func New(ctrl *search.Controller, title string) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search, ↓ for filters"
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	m := &Model{
		ctrl:   ctrl,
		nav:    suggest.NewNavigator(),
		input:  ti,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
		title:  title,
		width:  80,
	}
	m.view = ctrl.View()
	m.input.SetValue(m.view.State.Query)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// SearchView returns the last derived search view.
func (m *Model) SearchView() search.View {
	return m.view
}

// Suggestions returns the suggestion list and the highlighted index.
func (m *Model) Suggestions() ([]string, int) {
	return m.nav.Items(), m.nav.Selected()
}

// Input returns the current input text.
func (m *Model) Input() string {
	return m.input.Value()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-8)
		return m, nil

	case IndexReloaded:
		if msg.Event.OK {
			m.status = fmt.Sprintf("index reloaded: %d documents", msg.Event.Documents)
		} else if msg.Event.Err != nil {
			m.status = "reload failed: " + msg.Event.Err.Error()
		}
		m.view = m.ctrl.View()
		m.nav.Reset(m.ctrl.Suggest(m.input.Value()))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.nav.Down()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.nav.Up()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		action := m.nav.Enter(m.input.Value())
		switch action.Kind {
		case suggest.Accept:
			m.view = m.ctrl.SelectSuggestion(action.Value)
		default:
			m.view = m.ctrl.SubmitQuery(action.Value)
		}
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.view.State.Page < m.view.TotalPages {
			m.view = m.ctrl.ChangePage(m.view.State.Page + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.view.State.Page > 1 {
			m.view = m.ctrl.ChangePage(m.view.State.Page - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		if n := len(m.view.Active); n > 0 {
			m.view = m.ctrl.ToggleFilter(m.view.Active[n-1])
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if v, ok := m.ctrl.Back(); ok {
			m.view = v
			m.syncInput()
		}
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		if v, ok := m.ctrl.Forward(); ok {
			m.view = v
			m.syncInput()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.nav.Reset(m.ctrl.Suggest(m.input.Value()))
	}
	return m, cmd
}

// syncInput mirrors the stored query into the input and drops suggestions.
func (m *Model) syncInput() {
	m.input.SetValue(m.view.State.Query)
	m.input.CursorEnd()
	m.nav.Reset(nil)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(m.styles.Title.Render(m.title))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n")

	items, selected := m.nav.Items(), m.nav.Selected()
	for i, s := range items {
		if i == selected {
			b.WriteString(m.styles.Selected.Render("› " + s))
		} else {
			b.WriteString(m.styles.Suggestion.Render("  " + s))
		}
		b.WriteString("\n")
	}

	if len(m.view.Active) > 0 {
		chips := make([]string, len(m.view.Active))
		for i, f := range m.view.Active {
			chips[i] = m.styles.Chip.Render(f)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.view.Empty() {
		b.WriteString(m.styles.Muted.Render("No results found."))
		b.WriteString("\n")
	}
	for _, doc := range m.view.Items {
		b.WriteString(m.styles.Result.Render(doc.Title()))
		if facets := doc.Facets(m.view.FacetField); len(facets) > 0 {
			b.WriteString("  ")
			b.WriteString(m.styles.Facets.Render(strings.Join(facets, ", ")))
		}
		b.WriteString("\n")
		if text := doc.String("text"); text != "" {
			b.WriteString(m.styles.Muted.Render(render.Truncate(strings.Join(strings.Fields(text), " "), max(20, m.width-4))))
			b.WriteString("\n")
		}
	}

	if m.view.HasPagination() {
		b.WriteString(m.styles.Status.Render(fmt.Sprintf("page %d of %d · %d results",
			m.view.State.Page, m.view.TotalPages, m.view.Total)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.styles.Muted.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
