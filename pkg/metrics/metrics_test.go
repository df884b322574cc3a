package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMiddlewareRecordsPattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	srv := httptest.NewServer(m.Middleware(mux))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/things/42")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	body := scrape(t, m)
	want := `seek_http_requests_total{method="GET",path="GET /api/things/{id}",status="418"} 1`
	if !strings.Contains(body, want) {
		t.Errorf("expected %q in:\n%s", want, body)
	}
}

func TestMiddlewareUnknownPath(t *testing.T) {
	m := New(prometheus.NewRegistry())
	h := m.Middleware(http.NewServeMux())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/missing", nil))

	if !strings.Contains(scrape(t, m), `path="unknown",status="404"`) {
		t.Error("expected an unknown path label for unmatched requests")
	}
}

func TestSearchAndIndexMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveSearch("web", 12)
	m.ObserveSearch("api", 0)
	m.ObserveSuggest()
	m.SetIndex(120, 3)
	m.ObserveReload(false)

	body := scrape(t, m)
	for _, want := range []string{
		`seek_searches_total{frontend="web"} 1`,
		`seek_searches_total{frontend="api"} 1`,
		`seek_search_results_count 2`,
		`seek_suggestions_total 1`,
		`seek_index_documents 120`,
		`seek_index_generation 3`,
		`seek_index_reloads_total{result="failure"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}
