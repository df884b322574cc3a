package index

import (
	"slices"
	"time"

	"github.com/rubiojr/seek/pkg/match"
)

// Store owns a loaded corpus and its compiled engine. It is immutable and
// safe for concurrent use.
type Store struct {
	docs        []Document
	engine      *match.Engine
	keys        []WeightedKey
	filter      string
	view        string
	source      string
	loadedAt    time.Time
	facetValues []string
}

// NewStore compiles the engine for m.
func NewStore(m *Manifest, source string) *Store {
	keys := make([]match.Key, 0, len(m.Keys))
	for _, k := range m.Keys {
		keys = append(keys, match.Key{Name: k.Name, Weight: k.Weight})
	}

	s := &Store{
		docs:     m.Documents,
		engine:   match.New(m.Documents, keys),
		keys:     m.Keys,
		filter:   m.Filter,
		view:     m.View,
		source:   source,
		loadedAt: time.Now(),
	}
	s.facetValues = collectFacetValues(s.docs, s.filter)
	return s
}

// Documents returns the raw corpus in encounter order.
func (s *Store) Documents() []Document {
	return slices.Clone(s.docs)
}

// Len returns the number of documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Search returns documents ranked by the engine. A blank query returns the
// full corpus in encounter order.
func (s *Store) Search(query string) []Document {
	ranked := s.engine.Search(query)
	if ranked == nil {
		if isBlank(query) {
			return s.Documents()
		}
		return []Document{}
	}

	out := make([]Document, len(ranked))
	for i, idx := range ranked {
		out[i] = s.docs[idx]
	}
	return out
}

// FacetField is the document field used for filtering.
func (s *Store) FacetField() string {
	return s.filter
}

// View is the card layout declared by the index.
func (s *Store) View() string {
	return s.view
}

func (s *Store) Keys() []WeightedKey {
	return slices.Clone(s.keys)
}

// FacetValues returns every facet value in the corpus, deduplicated, in
// first encounter order.
func (s *Store) FacetValues() []string {
	return slices.Clone(s.facetValues)
}

func (s *Store) Source() string {
	return s.source
}

func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

func collectFacetValues(docs []Document, field string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, d := range docs {
		for _, v := range d.Facets(field) {
			if seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}
