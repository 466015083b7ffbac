// Package fetch implements the Fetcher interface.
// It downloads Google Docs HTML exports, either from a full URL or from a
// bare document id.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gaurav-prasanna/docpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "docpipe/1.0 (https://github.com/gaurav-prasanna/docpipe)"
	exportURLFormat  = "https://docs.google.com/document/d/%s/export?format=html"
)

var (
	docIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)
	docURLPattern = regexp.MustCompile(`^https?://docs\.google\.com/document/(?:u/\d+/)?d/([A-Za-z0-9_-]+)`)
)

// HTTPFetcher fetches exported documents via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	exportURL string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithExportURL overrides the export URL format; it must contain one %s
// for the document id.
func WithExportURL(format string) Option {
	return func(f *HTTPFetcher) { f.exportURL = format }
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		exportURL: exportURLFormat,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsDocID reports whether source looks like a bare Google Docs document id.
func IsDocID(source string) bool {
	return docIDPattern.MatchString(source)
}

// IsURL reports whether source is an http(s) URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// DocIDFromURL extracts the document id from a Google Docs document URL.
func DocIDFromURL(source string) (string, bool) {
	m := docURLPattern.FindStringSubmatch(source)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Fetch retrieves the export HTML for a URL or document id.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	url := source
	switch {
	case IsDocID(source):
		url = fmt.Sprintf(f.exportURL, source)
	case !IsURL(source):
		return nil, fmt.Errorf("not a URL or document id: %q", source)
	case !strings.Contains(source, "/export"):
		// Editor links serve the app shell, not the document.
		if id, ok := DocIDFromURL(source); ok {
			url = fmt.Sprintf(f.exportURL, id)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
