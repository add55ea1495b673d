package boot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// maxDocumentSize bounds a fetched JSON document.
const maxDocumentSize = 32 << 20

// Fetcher retrieves a JSON document by location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// SourceFetcher reads http(s) URLs with a GET and anything else from the
// local filesystem.
type SourceFetcher struct {
	Client *http.Client
}

// NewSourceFetcher returns a fetcher with a bounded HTTP timeout.
func NewSourceFetcher() *SourceFetcher {
	return &SourceFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
}

func (f *SourceFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if isURL(location) {
		return f.fetchHTTP(ctx, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return data, nil
}

func (f *SourceFetcher) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", location, err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	return data, nil
}

// fetchJSON fetches a document and checks that it parses as JSON.
func fetchJSON(ctx context.Context, f Fetcher, location string) (json.RawMessage, error) {
	data, err := f.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", location)
	}
	return json.RawMessage(data), nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}
