package types

import (
	"html/template"
	"time"
)

// PageData represents data passed to templates
type PageData struct {
	Title    string
	Version  string
	BasePath string

	Query   string
	Filters []string
	Page    int

	// Rendered fragments
	Results     template.HTML
	FilterMenu  template.HTML
	Pagination  template.HTML
	Suggestions template.HTML

	Total      int
	TotalPages int
	Empty      bool
	View       string

	Index IndexInfo

	Error      string
	LiveReload bool
}

// IndexInfo describes the loaded index for the page footer.
type IndexInfo struct {
	Source     string    `json:"source"`
	Documents  int       `json:"documents"`
	FacetField string    `json:"facet_field"`
	View       string    `json:"view"`
	LoadedAt   time.Time `json:"loaded_at"`
	Generation uint64    `json:"generation"`
}
