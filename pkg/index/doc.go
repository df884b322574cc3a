// Package index loads a prebuilt site search index and serves ranked
// lookups over it.
//
// An index document is either a bare JSON array of documents or an object
// carrying the documents together with their search configuration:
//
//	{
//	  "index":  [{"title": "Alpha", "tags": ["x"], "weight": 1}],
//	  "keys":   [{"name": "title", "weight": 3}, {"name": "tags", "weight": 2}],
//	  "filter": "tags",
//	  "view":   "grid"
//	}
//
// Load fetches the document over HTTP or from disk, Parse adapts either shape
// into a Manifest, and NewStore compiles the fuzzy engine. A Store is
// immutable; Holder swaps stores atomically on reload.
package index
