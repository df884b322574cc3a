package cmd

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rubiojr/seek/pkg/config"
	"github.com/rubiojr/seek/pkg/index"
	"github.com/rubiojr/seek/pkg/metrics"
	"github.com/rubiojr/seek/pkg/realtime"
)

// corpus builds n documents with decreasing weights so result order equals
// corpus order.
func corpus(n int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		tag := "even"
		if i%2 == 1 {
			tag = "odd"
		}
		fmt.Fprintf(&b, `{"title":"doc-%02d","url":"/docs/%02d","tags":["all","%s"],"weight":%d,"text":"%s"}`,
			i, i, tag, n-i, strings.Repeat("lorem ipsum ", 10))
	}
	b.WriteString("]")
	return b.String()
}

func testStore(t *testing.T, n int) *index.Store {
	t.Helper()
	m, err := index.Parse([]byte(corpus(n)), index.Manifest{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return index.NewStore(m, "test.json")
}

func setupTestWebServer(t *testing.T, load index.LoaderFunc) (*WebServer, http.Handler) {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.Widget.Tooltip = true

	holder := index.NewHolder(testStore(t, 23), load)
	ws := newWebServer(holder, cfg, metrics.New(prometheus.NewRegistry()))
	return ws, ws.Handler()
}

func doGet(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestWebSearchPage(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/search")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()

	for _, want := range []string{
		"doc-00",
		"doc-08",
		"23 results, page 1 of 3",
		`aria-current="page"`,
		`href="/search?p=2"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
	if strings.Contains(body, "doc-09") {
		t.Error("page 1 must not contain the tenth document")
	}
}

func TestWebSearchLastPage(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/search?p=3")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"doc-18", "doc-22", "page 3 of 3"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in page", want)
		}
	}
}

func TestWebSearchFilter(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/search?f=odd")
	body := w.Body.String()
	if !strings.Contains(body, "11 results, page 1 of 2") {
		t.Error("expected 11 odd documents")
	}
	if strings.Contains(body, "doc-00") {
		t.Error("filtered page must not contain even documents")
	}
	if !strings.Contains(body, `data-state="active"`) {
		t.Error("expected the active filter chip")
	}
}

func TestWebSearchEmpty(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/search?f=nothing")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "No results found.") {
		t.Error("expected the empty state")
	}
	if strings.Contains(body, `class="search-pagination"`) {
		t.Error("empty results must not render pagination")
	}
}

func TestWebRedirectPastLastPage(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	for _, target := range []string{"/search?p=9", "/search?p=1024819115206086202"} {
		w := doGet(t, h, target)
		if w.Code != http.StatusFound {
			t.Fatalf("%s: Expected status 302, got %d", target, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/search?p=3" {
			t.Errorf("%s: Location = %q, want /search?p=3", target, loc)
		}
	}
}

func TestWebHome(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/?q=doc")
	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/search?q=doc" {
		t.Errorf("Location = %q", loc)
	}

	if w := doGet(t, h, "/nope"); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestWebStatic(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/static/style.css")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/css" {
		t.Errorf("Content-Type = %q", ct)
	}

	if w := doGet(t, h, "/static/missing.js"); w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestWebGzip(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/api/search", "Accept-Encoding", "gzip")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if enc := w.Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", enc)
	}

	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(zr).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 23 {
		t.Errorf("total = %d, want 23", resp.Total)
	}
}

func TestWebRequestID(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	w := doGet(t, h, "/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id")
	}
}

func TestWebMetrics(t *testing.T) {
	_, h := setupTestWebServer(t, nil)

	doGet(t, h, "/search?q=doc")
	doGet(t, h, "/api/search")

	w := doGet(t, h, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		`seek_searches_total{frontend="web"} 1`,
		`seek_searches_total{frontend="api"} 1`,
		`seek_http_requests_total{method="GET",path="GET /search",status="200"} 1`,
		`seek_index_documents 23`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected %q in metrics", want)
		}
	}
}

func TestWebReloadBroadcasts(t *testing.T) {
	var calls atomic.Int32
	ws, _ := setupTestWebServer(t, func(ctx context.Context) (*index.Store, error) {
		if calls.Add(1) == 1 {
			return testStore(t, 5), nil
		}
		return nil, fmt.Errorf("fetch failed")
	})

	id, ch := ws.hub.Register()
	defer ws.hub.Unregister(id)

	if err := ws.holder.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	ev := <-ch
	if ev.Type != realtime.TypeReload || !ev.Index.OK || ev.Index.Documents != 5 || ev.Index.Generation != 2 {
		t.Errorf("unexpected event %+v", ev)
	}

	if err := ws.holder.Reload(context.Background()); err == nil {
		t.Fatal("expected the second reload to fail")
	}
	ev = <-ch
	if ev.Index.OK || ev.Index.Error == "" || ev.Index.Documents != 5 {
		t.Errorf("unexpected failure event %+v", ev)
	}
	if ws.holder.Store().Len() != 5 {
		t.Error("failed reload must keep the previous index")
	}
}

func TestWebSearchConsistentDuringReload(t *testing.T) {
	var calls atomic.Int32
	ws, h := setupTestWebServer(t, func(ctx context.Context) (*index.Store, error) {
		if calls.Add(1)%2 == 1 {
			return testStore(t, 5), nil
		}
		return testStore(t, 23), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ctx.Err() == nil {
			ws.holder.Reload(ctx)
		}
	}()
	defer func() {
		cancel()
		<-done
	}()

	for i := 0; i < 200; i++ {
		body := doGet(t, h, "/search").Body.String()
		switch {
		case strings.Contains(body, "23 results"):
			if !strings.Contains(body, "23 documents") {
				t.Fatal("page mixes results and footer from different indexes")
			}
		case strings.Contains(body, "5 results"):
			if !strings.Contains(body, "5 documents") {
				t.Fatal("page mixes results and footer from different indexes")
			}
		default:
			t.Fatalf("unexpected page %q", body)
		}
	}
}

func TestWebEventsThroughMiddleware(t *testing.T) {
	_, h := setupTestWebServer(t, nil)
	ts := httptest.NewServer(h)
	defer ts.Close()

	u, _ := url.Parse(ts.URL)
	u.Scheme = "ws"
	u.Path = "/api/events"

	header := http.Header{}
	header.Set("Accept-Encoding", "gzip")
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		t.Fatalf("dial ws: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var hello realtime.InternalEvent
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != realtime.TypeHello || hello.Index.Documents != 23 {
		t.Errorf("unexpected hello %+v", hello)
	}
}
