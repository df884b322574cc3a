package index

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const sampleIndex = `{
	"index": [
		{"title": "Alpha", "tags": ["x"], "weight": 1},
		{"title": "Beta", "tags": ["y"], "weight": 2}
	],
	"keys": [{"name": "title", "weight": 3}],
	"filter": "tags",
	"view": "grid"
}`

func gzipped(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func zstded(t *testing.T, data string) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll([]byte(data), nil)
}

func TestLoadHTTP(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	store, err := Load(context.Background(), srv.URL+"/index.json", WithUserAgent("seek-test"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}
	if store.View() != "grid" {
		t.Errorf("View = %q, want grid", store.View())
	}
	if gotUA != "seek-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if store.Source() != srv.URL+"/index.json" {
		t.Errorf("Source = %q", store.Source())
	}
}

func TestLoadHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/index.json")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %T", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
}

func TestLoadHTTPTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := Load(context.Background(), url+"/index.json")
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestLoadHTTPCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Load(ctx, srv.URL); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadHTTPCompressed(t *testing.T) {
	gz := gzipped(t, sampleIndex)
	zs := zstded(t, sampleIndex)

	mux := http.NewServeMux()
	mux.HandleFunc("/index.json.gz", func(w http.ResponseWriter, r *http.Request) {
		w.Write(gz)
	})
	mux.HandleFunc("/served.json.gz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(gz)
	})
	mux.HandleFunc("/encoded.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "zstd")
		w.Write(zs)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	for _, path := range []string{"/index.json.gz", "/served.json.gz", "/encoded.json"} {
		t.Run(path, func(t *testing.T) {
			store, err := Load(context.Background(), srv.URL+path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if store.Len() != 2 {
				t.Errorf("Len = %d, want 2", store.Len())
			}
		})
	}
}

func TestLoadInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL)
	if !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if errors.Is(err, ErrFetch) {
		t.Error("a decode failure is not a fetch failure")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "index.json")
	zst := filepath.Join(dir, "index.json.zst")
	if err := os.WriteFile(plain, []byte(`[{"title":"Alpha"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(zst, zstded(t, sampleIndex), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		source string
		want   int
	}{
		{plain, 1},
		{"file://" + plain, 1},
		{zst, 2},
	}
	for _, tt := range tests {
		store, err := Load(context.Background(), tt.source)
		if err != nil {
			t.Fatalf("Load(%s): %v", tt.source, err)
		}
		if store.Len() != tt.want {
			t.Errorf("Load(%s): Len = %d, want %d", tt.source, store.Len(), tt.want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected the os error to be wrapped, got %v", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte(`[{"name":"a","project":"p"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := Load(context.Background(), path, WithDefaults([]WeightedKey{{Name: "name", Weight: 1}}, "project", "grid"))
	if err != nil {
		t.Fatal(err)
	}
	if store.FacetField() != "project" || store.View() != "grid" {
		t.Errorf("FacetField/View = %q/%q", store.FacetField(), store.View())
	}
	if got := store.Search("a"); len(got) != 1 {
		t.Errorf("Search(a) = %d documents, want 1", len(got))
	}
}
