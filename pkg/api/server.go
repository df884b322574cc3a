package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/metrics"
	"github.com/rubiojr/seek/pkg/realtime"
	"github.com/rubiojr/seek/pkg/search"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

type Server struct {
	holder  *index.Holder
	perPage int
	widget  config.WidgetConfig

	mu      sync.RWMutex
	hub     *realtime.EventHub
	metrics *metrics.Metrics
}

func NewServer(holder *index.Holder, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.GetDefaultConfig()
	}
	return &Server{
		holder:  holder,
		perPage: cfg.PerPage,
		widget:  cfg.Widget,
	}
}

// SetEventHub attaches the hub streamed by /api/events.
func (s *Server) SetEventHub(h *realtime.EventHub) {
	s.mu.Lock()
	s.hub = h
	s.mu.Unlock()
}

// SetMetrics enables search instrumentation.
func (s *Server) SetMetrics(m *metrics.Metrics) {
	s.mu.Lock()
	s.metrics = m
	s.mu.Unlock()
}

func (s *Server) eventHub() *realtime.EventHub {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hub
}

func (s *Server) instruments() *metrics.Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

func (s *Server) controller(r *http.Request, perPage int) *search.Controller {
	return search.NewController(s.holder.Store, search.NewURLStore(r.URL), search.Options{
		PerPage: perPage,
		Widget:  s.widget,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ForService("api").Errorf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

// RequestIDMiddleware propagates the caller's X-Request-ID or assigns a new
// one, echoing it in the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestID returns the request identifier stored by RequestIDMiddleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
