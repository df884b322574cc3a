package search

import (
	"sort"

	"github.com/rubiojr/seek/pkg/index"
)

// Index is the read side of a loaded search index.
type Index interface {
	// Documents returns the whole corpus in encounter order.
	Documents() []index.Document

	// Search returns documents ranked by the matching engine.
	Search(query string) []index.Document

	// FacetField names the document field used for filtering.
	FacetField() string

	// FacetValues returns every distinct facet value in the corpus.
	FacetValues() []string
}

// FacetCount is a facet value available for filtering and the number of
// results carrying it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ComputeResults returns the documents matching s, sorted by descending
// weight. With active filters, only documents whose facet field holds every
// filter are kept.
func ComputeResults(idx Index, s State) []index.Document {
	var candidates []index.Document
	if s.Query != "" {
		candidates = idx.Search(s.Query)
	} else {
		candidates = idx.Documents()
	}

	results := make([]index.Document, 0, len(candidates))
	field := idx.FacetField()
	for _, d := range candidates {
		if len(s.Filters) > 0 && !d.HasFacets(field, s.Filters) {
			continue
		}
		results = append(results, d)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Weight() > results[j].Weight()
	})
	return results
}

// AvailableFacets counts the facet values of results that are not already
// active, most frequent first. Ties keep first encounter order.
func AvailableFacets(results []index.Document, active []string, field string) []FacetCount {
	skip := make(map[string]bool, len(active))
	for _, a := range active {
		skip[a] = true
	}

	pos := make(map[string]int)
	var facets []FacetCount
	for _, d := range results {
		for _, v := range d.Facets(field) {
			if skip[v] {
				continue
			}
			i, ok := pos[v]
			if !ok {
				i = len(facets)
				pos[v] = i
				facets = append(facets, FacetCount{Value: v})
			}
			facets[i].Count++
		}
	}

	sort.SliceStable(facets, func(i, j int) bool {
		return facets[i].Count > facets[j].Count
	})
	return facets
}
