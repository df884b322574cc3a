package search

import "github.com/rubiojr/seek/pkg/index"

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 9

// MaxWindow is the largest number of page links shown at once.
const MaxWindow = 5

// Window is an inclusive range of page numbers. The zero Window is empty.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Pages lists the page numbers in the window.
func (w Window) Pages() []int {
	if w.Start < 1 || w.End < w.Start {
		return nil
	}
	pages := make([]int, 0, w.End-w.Start+1)
	for p := w.Start; p <= w.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Contains reports whether page is inside the window.
func (w Window) Contains(page int) bool {
	return w.Start >= 1 && page >= w.Start && page <= w.End
}

// Paginate returns the page-th slice of results. Pages past the end yield an
// empty slice.
func Paginate(results []index.Document, page, perPage int) []index.Document {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	if page-1 >= TotalPages(len(results), perPage) {
		return []index.Document{}
	}
	start := (page - 1) * perPage
	end := min(start+perPage, len(results))
	return results[start:end]
}

// TotalPages returns the number of pages needed for n results.
func TotalPages(n, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if n <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// PageWindow returns up to MaxWindow pages centred on page. Near either end
// the window grows toward the side that has room, so page 1 of 20 yields
// 1..5. page is clamped into [1, totalPages] first.
func PageWindow(page, totalPages int) Window {
	if totalPages < 1 {
		return Window{}
	}
	page = max(1, min(page, totalPages))

	half := MaxWindow / 2
	start := max(1, page-half)
	end := min(totalPages, page+half)
	if end-start < MaxWindow-1 {
		if start == 1 {
			end = min(totalPages, start+MaxWindow-1)
		} else if end == totalPages {
			start = max(1, end-MaxWindow+1)
		}
	}
	return Window{Start: start, End: end}
}
