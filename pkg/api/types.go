package api

import (
	"time"

	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/search"
)

type SearchResponse struct {
	Query      string              `json:"query"`
	Filters    []string            `json:"filters"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"total_pages"`
	Window     search.Window       `json:"window"`
	Results    []index.Document    `json:"results"`
	Facets     []search.FacetCount `json:"facets"`
	Empty      bool                `json:"empty"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type IndexResponse struct {
	Source     string              `json:"source"`
	Documents  int                 `json:"documents"`
	FacetField string              `json:"facet_field"`
	Facets     int                 `json:"facets"`
	Keys       []index.WeightedKey `json:"keys"`
	View       string              `json:"view"`
	LoadedAt   time.Time           `json:"loaded_at"`
	Generation uint64              `json:"generation"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
