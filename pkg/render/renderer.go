// Package render produces the HTML fragments of a search page from a
// search.View: result cards, filter chips, pagination and suggestions.
//
// Every control is a link to the URL of the state the corresponding
// transition produces, so the page works without scripts.
package render

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/search"
)

// DefaultBasePath is the path search links point to.
const DefaultBasePath = "/search"

// Renderer renders search views according to a WidgetConfig. It is safe for
// concurrent use.
type Renderer struct {
	widget   config.WidgetConfig
	view     config.View
	basePath string
	cards    *CardRegistry
}

type Option func(*Renderer)

// WithView sets the view declared by the index. The widget's own view, when
// configured, takes precedence.
func WithView(view string) Option {
	return func(r *Renderer) {
		r.view = config.View(view)
	}
}

// WithBasePath sets the path used in generated links.
func WithBasePath(path string) Option {
	return func(r *Renderer) {
		r.basePath = path
	}
}

func New(widget config.WidgetConfig, opts ...Option) *Renderer {
	r := &Renderer{widget: widget, basePath: DefaultBasePath}
	for _, opt := range opts {
		opt(r)
	}

	var fallback CardRenderer
	if r.View() == config.ViewGrid {
		fallback = NewGridCard(widget.Tooltip)
	} else {
		fallback = NewListCard(widget.Tooltip)
	}
	r.cards = NewCardRegistry(fallback)
	if widget.CardSource == config.CardPrecomputed {
		r.cards.Register(PrecomputedCard{})
	}
	return r
}

// View returns the effective card layout.
func (r *Renderer) View() config.View {
	if r.widget.View != "" {
		return r.widget.View
	}
	if r.view == config.ViewGrid {
		return config.ViewGrid
	}
	return config.ViewList
}

// HasSuggestions reports whether suggestions are enabled.
func (r *Renderer) HasSuggestions() bool {
	return r.widget.Suggestions
}

// HasTooltip reports whether tooltips are enabled.
func (r *Renderer) HasTooltip() bool {
	return r.widget.Tooltip
}

// Link returns the URL of state s.
func (r *Renderer) Link(s search.State) string {
	return s.Link(r.basePath)
}

// Card renders a single result card.
func (r *Renderer) Card(doc index.Document) template.HTML {
	return r.cards.Render(doc)
}

// Results renders the page's cards, or the empty state when items is empty.
func (r *Renderer) Results(items []index.Document) template.HTML {
	cards := make([]template.HTML, 0, len(items))
	for _, doc := range items {
		cards = append(cards, r.Card(doc))
	}
	return r.execute("results", struct {
		View  config.View
		Cards []template.HTML
	}{r.View(), cards})
}

type chip struct {
	Value string
	Count int
	Href  string
}

// Filters renders active filters as removable chips followed by the
// available facets with their counts.
func (r *Renderer) Filters(s search.State, available []search.FacetCount) template.HTML {
	data := struct {
		Active    []chip
		Available []chip
		Tooltip   bool
	}{Tooltip: r.widget.Tooltip}

	for _, f := range s.Filters {
		data.Active = append(data.Active, chip{Value: f, Href: r.Link(search.ToggleFilter(s, f))})
	}
	for _, fc := range available {
		data.Available = append(data.Available, chip{
			Value: fc.Value,
			Count: fc.Count,
			Href:  r.Link(search.ToggleFilter(s, fc.Value)),
		})
	}
	return r.execute("filters", data)
}

// PageLink is one pagination control.
type PageLink struct {
	Text    string
	Label   string
	Href    string
	Current bool
}

// PageLinks returns the pagination controls for the view: first and
// previous when past page 1, the page window, next and last before the
// final page. It returns nil when there is a single page.
func (r *Renderer) PageLinks(s search.State, window search.Window, totalPages int) []PageLink {
	if totalPages <= 1 {
		return nil
	}

	page := max(1, min(s.Page, totalPages))
	var links []PageLink
	if page > 1 {
		links = append(links,
			PageLink{Text: "««", Label: "First page", Href: r.Link(search.ChangePage(s, 1))},
			PageLink{Text: "«", Label: "Previous page", Href: r.Link(search.ChangePage(s, page-1))},
		)
	}
	for _, p := range window.Pages() {
		links = append(links, PageLink{
			Text:    strconv.Itoa(p),
			Href:    r.Link(search.ChangePage(s, p)),
			Current: p == s.Page,
		})
	}
	if page < totalPages {
		links = append(links,
			PageLink{Text: "»", Label: "Next page", Href: r.Link(search.ChangePage(s, page+1))},
			PageLink{Text: "»»", Label: "Last page", Href: r.Link(search.ChangePage(s, totalPages))},
		)
	}
	return links
}

// Pagination renders PageLinks. Nothing is rendered for a single page.
func (r *Renderer) Pagination(s search.State, window search.Window, totalPages int) template.HTML {
	links := r.PageLinks(s, window, totalPages)
	if links == nil {
		return ""
	}
	return r.execute("pagination", links)
}

// Suggestions renders suggestion links. Accepting one adds it as a filter.
// Nothing is rendered when suggestions are disabled or the list is empty.
func (r *Renderer) Suggestions(s search.State, suggestions []string) template.HTML {
	if !r.widget.Suggestions || len(suggestions) == 0 {
		return ""
	}
	items := make([]chip, 0, len(suggestions))
	for _, v := range suggestions {
		items = append(items, chip{Value: v, Href: r.Link(search.AddFilter(s, v))})
	}
	return r.execute("suggestions", items)
}

func (r *Renderer) execute(name string, data any) template.HTML {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.ForService("render").Errorf("Failed to render %s: %v", name, err)
		return template.HTML("<!-- " + name + " renderer error -->")
	}
	return template.HTML(buf.String())
}
