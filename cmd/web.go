package cmd

import (
	"context"
	"embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rubiojr/seek/cmd/web/components"
	"github.com/rubiojr/seek/cmd/web/components/types"
	"github.com/rubiojr/seek/pkg/api"
	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/metrics"
	"github.com/rubiojr/seek/pkg/realtime"
	"github.com/rubiojr/seek/pkg/render"
	"github.com/rubiojr/seek/pkg/search"
	"github.com/rubiojr/seek/pkg/version"
	"github.com/urfave/cli/v3"
)

//go:embed web/static/*
var staticFS embed.FS

// WebCommand creates the web command with both API and UI
func WebCommand() *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Start web server with both API endpoints and HTML interface",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "Port to listen on (defaults to web.port in the config)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (defaults to web.host in the config)",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Reload the index when the local file changes",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return startWebServer(ctx, c)
		},
	}
}

// WebServer holds the server configuration and dependencies
type WebServer struct {
	holder     *index.Holder
	config     *config.Config
	apiServer  *api.Server
	hub        *realtime.EventHub
	metrics    *metrics.Metrics
	liveReload bool
}

// newWebServer wires the API, the event hub and metrics around holder.
func newWebServer(holder *index.Holder, cfg *config.Config, m *metrics.Metrics) *WebServer {
	hub := realtime.NewEventHub(0)

	apiServer := api.NewServer(holder, cfg)
	apiServer.SetEventHub(hub)
	apiServer.SetMetrics(m)

	if store := holder.Store(); store != nil {
		m.SetIndex(store.Len(), holder.Generation())
	}
	holder.OnReload(func(ev index.ReloadEvent) {
		m.ObserveReload(ev.OK)
		m.SetIndex(ev.Documents, ev.Generation)
		hub.Broadcast(ev)
	})

	return &WebServer{
		holder:    holder,
		config:    cfg,
		apiServer: apiServer,
		hub:       hub,
		metrics:   m,
	}
}

// Handler returns the complete HTTP handler.
func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()

	// API routes
	s.apiServer.RegisterRoutes(mux)

	// Web UI routes
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /search", s.handleSearch)

	// Static assets
	mux.HandleFunc("GET /static/", s.handleStatic)

	mux.Handle("GET /metrics", s.metrics.Handler())

	var handler http.Handler = s.metrics.Middleware(mux)
	handler = compress(handler)
	handler = api.RequestIDMiddleware(handler)
	return api.CorsMiddleware(handler)
}

// compress gzips responses except websocket upgrades.
func compress(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// startWebServer starts the web server with both API and UI
func startWebServer(ctx context.Context, c *cli.Command) error {
	logger := log.ForService("web")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if h := c.String("host"); h != "" {
		cfg.Web.Host = h
	}
	if p := c.String("port"); p != "" {
		cfg.Web.Port = p
	}

	holder, err := newHolder(ctx, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	webServer := newWebServer(holder, cfg, metrics.New(reg))
	watch := cfg.Watch || c.Bool("watch")
	webServer.liveReload = watch

	reloadCtx, cancelReload := context.WithCancel(ctx)
	defer cancelReload()
	startReloaders(reloadCtx, holder, cfg.Index, watch, cfg.RefreshInterval.Duration)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Web.Host, cfg.Web.Port),
		Handler:           webServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting web server on http://%s", server.Addr)
		logger.Infof("Available endpoints:")
		logger.Infof("  Web UI:")
		logger.Infof("    GET /search - Search page (q, f, p)")
		logger.Infof("  API:")
		logger.Infof("    GET /api/search - Search results as JSON")
		logger.Infof("    GET /api/suggest - Facet suggestions")
		logger.Infof("    GET /api/index - Index information")
		logger.Infof("    GET /api/events - Index reload events (websocket)")
		logger.Infof("    GET /health - Health check")
		logger.Infof("    GET /metrics - Prometheus metrics")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("web server: %w", err)
	}

	logger.Infof("Shutting down web server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// Web UI Handlers

// handleHome redirects to the search page, keeping any search parameters
func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	target := render.DefaultBasePath
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// handleSearch renders the search page for the state in the URL
func (s *WebServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	store := s.holder.Store()
	current := func() *index.Store { return store }
	ctrl := search.NewController(current, search.NewURLStore(r.URL), search.Options{
		PerPage: s.config.PerPage,
		Widget:  s.config.Widget,
	})
	v := ctrl.View()
	rnd := render.New(s.config.Widget, render.WithView(store.View()))

	// Pages past the end point to the last page
	if v.TotalPages > 0 && v.State.Page > v.TotalPages {
		http.Redirect(w, r, rnd.Link(search.ChangePage(v.State, v.TotalPages)), http.StatusFound)
		return
	}

	s.metrics.ObserveSearch("web", v.Total)

	title := s.config.Web.Title
	if v.State.Query != "" {
		title = fmt.Sprintf("%s - %s", v.State.Query, title)
	}

	data := types.PageData{
		Title:       title,
		Version:     version.APIVersion(),
		BasePath:    render.DefaultBasePath,
		Query:       v.State.Query,
		Filters:     v.Active,
		Page:        v.State.Page,
		Results:     rnd.Results(v.Items),
		FilterMenu:  rnd.Filters(v.State, v.Available),
		Pagination:  rnd.Pagination(v.State, v.Window, v.TotalPages),
		Suggestions: rnd.Suggestions(v.State, v.Suggestions),
		Total:       v.Total,
		TotalPages:  v.TotalPages,
		Empty:       v.Empty(),
		View:        string(rnd.View()),
		Index:       s.indexInfo(store),
		LiveReload:  s.liveReload,
	}

	if err := components.Search(data).Render(r.Context(), w); err != nil {
		http.Error(w, fmt.Sprintf("Template error: %v", err), http.StatusInternalServerError)
	}
}

func (s *WebServer) indexInfo(store *index.Store) types.IndexInfo {
	return types.IndexInfo{
		Source:     store.Source(),
		Documents:  store.Len(),
		FacetField: store.FacetField(),
		View:       store.View(),
		LoadedAt:   store.LoadedAt(),
		Generation: s.holder.Generation(),
	}
}

// handleStatic serves static assets from embedded files
func (s *WebServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	// Remove /static/ prefix and add web/static/ prefix for embedded filesystem
	filePath := "web/static/" + strings.TrimPrefix(path, "/static/")

	content, err := staticFS.ReadFile(filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Set appropriate content type
	if strings.HasSuffix(path, ".css") {
		w.Header().Set("Content-Type", "text/css")
	} else if strings.HasSuffix(path, ".js") {
		w.Header().Set("Content-Type", "application/javascript")
	} else if strings.HasSuffix(path, ".svg") {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else if strings.HasSuffix(path, ".ico") {
		w.Header().Set("Content-Type", "image/x-icon")
	}

	// Set cache headers for static assets
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if _, err := w.Write(content); err != nil {
		log.ForService("web").Errorf("Error writing static content: %v", err)
	}
}
