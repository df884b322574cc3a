package index

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rubiojr/seek/pkg/log"
	"github.com/rubiojr/seek/pkg/version"
)

type loadOptions struct {
	client    *http.Client
	defaults  Manifest
	userAgent string
}

// Option configures Load.
type Option func(*loadOptions)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(o *loadOptions) {
		o.client = c
	}
}

// WithDefaults sets the search configuration applied to indexes published as
// a bare array of documents.
func WithDefaults(keys []WeightedKey, filter, view string) Option {
	return func(o *loadOptions) {
		o.defaults = Manifest{Keys: keys, Filter: filter, View: view}
	}
}

func WithUserAgent(ua string) Option {
	return func(o *loadOptions) {
		o.userAgent = ua
	}
}

// Load fetches, decodes and compiles the index at source, which may be an
// http(s) URL, a file:// URL or a filesystem path.
func Load(ctx context.Context, source string, opts ...Option) (*Store, error) {
	o := loadOptions{
		client:    http.DefaultClient,
		userAgent: "seek/" + version.Version,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := log.ForService("index")
	start := time.Now()

	data, err := fetch(ctx, source, &o)
	if err != nil {
		logger.Errorf("Failed to fetch %s: %v", source, err)
		return nil, err
	}

	m, err := Parse(data, o.defaults)
	if err != nil {
		logger.Errorf("Failed to parse %s: %v", source, err)
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	store := NewStore(m, source)
	logger.Infof("Loaded %d documents from %s in %s", len(m.Documents), source, time.Since(start).Round(time.Millisecond))
	logger.Debugf("keys=%v filter=%q view=%q", m.Keys, m.Filter, m.View)
	return store, nil
}

func fetch(ctx context.Context, source string, o *loadOptions) ([]byte, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return fetchHTTP(ctx, source, u, o)
	}

	path := source
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	return fetchFile(source, path)
}

func fetchHTTP(ctx context.Context, source string, u *url.URL, o *loadOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	if o.userAgent != "" {
		req.Header.Set("User-Agent", o.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Source: source, StatusCode: resp.StatusCode}
	}

	encoding := strings.ToLower(resp.Header.Get("Content-Encoding"))
	if encoding == "" && !resp.Uncompressed {
		encoding = encodingFromName(u.Path)
	}

	data, err := decode(resp.Body, encoding)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	return data, nil
}

func fetchFile(source, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	defer f.Close()

	data, err := decode(f, encodingFromName(path))
	if err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}
	return data, nil
}

func encodingFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return "gzip"
	case ".zst":
		return "zstd"
	}
	return ""
}

func decode(r io.Reader, encoding string) ([]byte, error) {
	switch encoding {
	case "", "identity":
		return io.ReadAll(r)
	case "gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	}
	return nil, fmt.Errorf("unsupported content encoding %q", encoding)
}
