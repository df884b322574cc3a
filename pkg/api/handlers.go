package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/search"
	"github.com/rubiojr/seek/pkg/version"
)

// MaxPerPage bounds the per_page parameter.
const MaxPerPage = 100

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	perPage := s.perPage
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxPerPage {
			s.writeError(w, http.StatusBadRequest, "Invalid per_page", "per_page must be between 1 and "+strconv.Itoa(MaxPerPage))
			return
		}
		perPage = n
	}

	v := s.controller(r, perPage).View()
	if m := s.instruments(); m != nil {
		m.ObserveSearch("api", v.Total)
	}

	response := SearchResponse{
		Query:      v.State.Query,
		Filters:    v.Active,
		Page:       v.State.Page,
		PerPage:    v.PerPage,
		Total:      v.Total,
		TotalPages: v.TotalPages,
		Window:     v.Window,
		Results:    v.Items,
		Facets:     v.Available,
		Empty:      v.Empty(),
	}
	if response.Filters == nil {
		response.Filters = []string{}
	}
	if response.Results == nil {
		response.Results = []index.Document{}
	}
	if response.Facets == nil {
		response.Facets = []search.FacetCount{}
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if !s.widget.Suggestions {
		s.writeError(w, http.StatusNotFound, "Suggestions disabled", "Suggestions are not enabled for this widget")
		return
	}

	ctrl := s.controller(r, s.perPage)
	query := ctrl.State().Query
	suggestions := ctrl.Suggest(query)
	if suggestions == nil {
		suggestions = []string{}
	}
	if m := s.instruments(); m != nil {
		m.ObserveSuggest()
	}

	s.writeJSON(w, http.StatusOK, SuggestResponse{
		Query:       query,
		Suggestions: suggestions,
	})
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	store := s.holder.Store()
	if store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Index not loaded", "No index is available yet")
		return
	}

	s.writeJSON(w, http.StatusOK, IndexResponse{
		Source:     store.Source(),
		Documents:  store.Len(),
		FacetField: store.FacetField(),
		Facets:     len(store.FacetValues()),
		Keys:       store.Keys(),
		View:       store.View(),
		LoadedAt:   store.LoadedAt().UTC(),
		Generation: s.holder.Generation(),
	})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
