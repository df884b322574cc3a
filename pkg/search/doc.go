// Package search derives everything a search page displays from three URL
// parameters.
//
// # Overview
//
// The state of a search page lives entirely in its URL:
//
//   - q: the free text query (optional)
//   - f: the active facet filters (repeated, in the order they were added)
//   - p: the current page (positive integer, 1 when absent or malformed)
//
// ParseState rebuilds a State from those parameters and State.Values encodes
// it back, so a reload or a deep link reproduces the same page. Nothing in
// this package mutates a State in place: every user action is a transition
// returning a new State, which is written back to a StateStore and the page
// is derived again from scratch.
//
// # Derivation
//
// Given a State and an Index:
//
//	results := search.ComputeResults(idx, state)        // query, AND filter, sort by weight
//	facets := search.AvailableFacets(results, state.Filters, idx.FacetField())
//	page := search.Paginate(results, state.Page, perPage)
//	window := search.PageWindow(state.Page, search.TotalPages(len(results), perPage))
//
// ComputeResults runs the query through the index engine (a blank query
// uses the whole corpus), keeps the documents carrying every active filter
// and sorts them by descending weight. The sort is stable, so documents with
// equal weight keep the engine's ranking.
//
// # Transitions
//
//   - SubmitQuery sets q and resets the page
//   - ToggleFilter adds or removes one filter and resets the page
//   - AddFilter adds a filter, clears q and resets the page (accepting a suggestion)
//   - ChangePage only changes p
//
// # Controller
//
// Controller ties an Index, a StateStore and a WidgetConfig together for
// interactive front ends. Its View method returns a renderable snapshot and
// each action writes the store before returning the next snapshot. Page
// changes re-slice the cached result set instead of querying again.
//
// Usage in an HTTP handler, where the request URL is the store:
//
//	ctrl := search.NewController(holder.Store, search.NewURLStore(r.URL), search.Options{
//		PerPage: cfg.PerPage,
//		Widget:  cfg.Widget,
//	})
//	view := ctrl.View()
package search
