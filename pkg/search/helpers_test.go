package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rubiojr/seek/pkg/index"
)

const alphaBeta = `[
	{"title": "Alpha", "tags": ["x"], "weight": 1},
	{"title": "Beta", "tags": ["y"], "weight": 2}
]`

func newStore(t testing.TB, data string) *index.Store {
	t.Helper()
	m, err := index.Parse([]byte(data), index.Manifest{})
	if err != nil {
		t.Fatalf("parsing corpus: %v", err)
	}
	return index.NewStore(m, "test")
}

// numbered builds n documents titled "doc-00".."doc-NN" with decreasing
// weights so that result order equals corpus order.
func numbered(t testing.TB, n int) *index.Store {
	t.Helper()
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"title":"doc-%02d","tags":["all"],"weight":%d}`, i, n-i)
	}
	b.WriteString("]")
	return newStore(t, b.String())
}

func titles(docs []index.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Title()
	}
	return out
}

type countingIndex struct {
	*index.Store
	searches  int
	documents int
}

func (c *countingIndex) Search(q string) []index.Document {
	c.searches++
	return c.Store.Search(q)
}

func (c *countingIndex) Documents() []index.Document {
	c.documents++
	return c.Store.Documents()
}

func (c *countingIndex) calls() int {
	return c.searches + c.documents
}
