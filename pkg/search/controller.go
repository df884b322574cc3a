package search

import (
	"slices"

	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/suggest"
)

// Options configure a Controller.
type Options struct {
	// PerPage is the page size. DefaultPerPage when not positive.
	PerPage int

	// Widget enables optional capabilities. Suggestions are only computed
	// when Widget.Suggestions is set.
	Widget config.WidgetConfig
}

// View is a renderable snapshot of a search page.
type View struct {
	State       State
	Items       []index.Document
	Total       int
	PerPage     int
	TotalPages  int
	Window      Window
	Active      []string
	Available   []FacetCount
	Suggestions []string
	FacetField  string
}

// Empty reports whether the search matched nothing.
func (v View) Empty() bool {
	return v.Total == 0
}

// HasPagination reports whether page controls should be shown.
func (v View) HasPagination() bool {
	return v.TotalPages > 1
}

type resultCache struct {
	idx     Index
	query   string
	filters []string
	results []index.Document
}

type suggesterCache struct {
	idx Index
	s   *suggest.Suggester
}

// Controller derives Views from a StateStore and applies user actions to
// it. It is not safe for concurrent use.
type Controller struct {
	index   func() Index
	store   StateStore
	opts    Options
	results resultCache
	sugg    suggesterCache
}

// NewController returns a controller reading the current index from idx on
// every derivation, so reloaded indexes are picked up.
func NewController[I Index](idx func() I, store StateStore, opts Options) *Controller {
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	return &Controller{
		index: func() Index { return idx() },
		store: store,
		opts:  opts,
	}
}

// State returns the stored state.
func (c *Controller) State() State {
	return c.store.Read()
}

// Options returns the controller configuration.
func (c *Controller) Options() Options {
	return c.opts
}

// View derives the page for the stored state.
func (c *Controller) View() View {
	s := c.store.Read()
	idx := c.index()

	results := c.resultsFor(idx, s)
	total := len(results)
	totalPages := TotalPages(total, c.opts.PerPage)

	v := View{
		State:      s,
		Items:      Paginate(results, s.Page, c.opts.PerPage),
		Total:      total,
		PerPage:    c.opts.PerPage,
		TotalPages: totalPages,
		Window:     PageWindow(s.Page, totalPages),
		Active:     slices.Clone(s.Filters),
		Available:  AvailableFacets(results, s.Filters, idx.FacetField()),
		FacetField: idx.FacetField(),
	}
	if c.opts.Widget.Suggestions {
		v.Suggestions = c.suggestFor(idx, s.Query, s.Filters)
	}
	return v
}

// Suggest returns facet suggestions for partial input, excluding the active
// filters. It returns nil when suggestions are disabled.
func (c *Controller) Suggest(partial string) []string {
	if !c.opts.Widget.Suggestions {
		return nil
	}
	return c.suggestFor(c.index(), partial, c.store.Read().Filters)
}

func (c *Controller) SubmitQuery(q string) View {
	return c.apply(SubmitQuery(c.store.Read(), q))
}

func (c *Controller) ToggleFilter(value string) View {
	return c.apply(ToggleFilter(c.store.Read(), value))
}

// SelectSuggestion activates an accepted suggestion.
func (c *Controller) SelectSuggestion(value string) View {
	return c.apply(AddFilter(c.store.Read(), value))
}

func (c *Controller) ChangePage(page int) View {
	return c.apply(ChangePage(c.store.Read(), page))
}

// Back moves the store one entry back when it keeps a history.
func (c *Controller) Back() (View, bool) {
	n, ok := c.store.(Navigable)
	if !ok || !n.Back() {
		return c.View(), false
	}
	return c.View(), true
}

// Forward moves the store one entry forward when it keeps a history.
func (c *Controller) Forward() (View, bool) {
	n, ok := c.store.(Navigable)
	if !ok || !n.Forward() {
		return c.View(), false
	}
	return c.View(), true
}

func (c *Controller) apply(s State) View {
	c.store.Write(s)
	return c.View()
}

// resultsFor reuses the cached result set while the query, the filters and
// the index are unchanged.
func (c *Controller) resultsFor(idx Index, s State) []index.Document {
	rc := &c.results
	if rc.idx != nil && rc.idx == idx && rc.query == s.Query && slices.Equal(rc.filters, s.Filters) {
		return rc.results
	}

	log.ForService("search").Debugf("computing results q=%q f=%v", s.Query, s.Filters)
	*rc = resultCache{
		idx:     idx,
		query:   s.Query,
		filters: slices.Clone(s.Filters),
		results: ComputeResults(idx, s),
	}
	return rc.results
}

func (c *Controller) suggestFor(idx Index, partial string, exclude []string) []string {
	if c.sugg.idx == nil || c.sugg.idx != idx {
		c.sugg = suggesterCache{idx: idx, s: suggest.New(idx.FacetValues())}
	}
	return c.sugg.s.Suggest(partial, exclude)
}
