// Package match implements the weighted multi-key fuzzy engine used to rank
// index documents for a free text query.
//
// Matching itself is delegated to github.com/sahilm/fuzzy; this package only
// combines per-key results into one ranking.
package match

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Record is anything the engine can read string fields from.
type Record interface {
	Strings(field string) []string
}

// Key is a searchable field with a relative weight.
type Key struct {
	Name   string
	Weight float64
}

type entry struct {
	record int
	text   string
}

// keySource adapts a key's flattened strings to fuzzy.Source.
type keySource []entry

func (s keySource) String(i int) string { return s[i].text }
func (s keySource) Len() int            { return len(s) }

type compiledKey struct {
	weight  float64
	entries keySource
}

// Engine is immutable once built and safe for concurrent use.
type Engine struct {
	size int
	keys []compiledKey
}

// New compiles records for the given keys. Keys with a non-positive weight
// are weighted 1.
func New[R Record](records []R, keys []Key) *Engine {
	e := &Engine{size: len(records)}
	for _, k := range keys {
		w := k.Weight
		if w <= 0 {
			w = 1
		}
		ck := compiledKey{weight: w}
		for i, r := range records {
			for _, s := range r.Strings(k.Name) {
				if s == "" {
					continue
				}
				ck.entries = append(ck.entries, entry{record: i, text: s})
			}
		}
		e.keys = append(e.keys, ck)
	}
	return e
}

// Len returns the number of compiled records.
func (e *Engine) Len() int {
	return e.size
}

// Search returns record indexes ranked best first. Every whitespace
// separated term must match at least one key. A blank query returns nil.
func (e *Engine) Search(query string) []int {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil
	}

	var total map[int]float64
	for _, term := range terms {
		scores := e.scoreTerm(term)
		if total == nil {
			total = scores
			continue
		}
		for rec := range total {
			s, ok := scores[rec]
			if !ok {
				delete(total, rec)
				continue
			}
			total[rec] += s
		}
		if len(total) == 0 {
			return nil
		}
	}
	if len(total) == 0 {
		return nil
	}

	ranked := make([]int, 0, len(total))
	for rec := range total {
		ranked = append(ranked, rec)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if total[a] != total[b] {
			return total[a] > total[b]
		}
		return a < b
	})
	return ranked
}

// scoreTerm sums, per record, the best weighted contribution of every key
// matching term.
func (e *Engine) scoreTerm(term string) map[int]float64 {
	scores := make(map[int]float64)
	for _, k := range e.keys {
		if len(k.entries) == 0 {
			continue
		}
		matches := fuzzy.FindFrom(term, k.entries)
		if len(matches) == 0 {
			continue
		}
		best := matches[0].Score
		perRecord := make(map[int]float64)
		for _, m := range matches {
			rec := k.entries[m.Index].record
			c := k.weight / float64(1+best-m.Score)
			if c > perRecord[rec] {
				perRecord[rec] = c
			}
		}
		for rec, c := range perRecord {
			scores[rec] += c
		}
	}
	return scores
}
