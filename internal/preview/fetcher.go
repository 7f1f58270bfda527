// Package preview fetches the pre-rendered example-table HTML fragments
// that catalog pages display on demand. Fragments are served from a fixed
// URL per dataset variant; any upstream failure surfaces as one generic
// error with no retry or classification.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// ErrUnavailable is the single user-facing failure for a preview fetch.
var ErrUnavailable = errors.New("examples are currently unavailable")

// DefaultBaseURL serves the published example tables.
const DefaultBaseURL = "https://storage.googleapis.com/tfds-data/visualization/dataframe"

// maxFragmentSize caps a fetched fragment at 4 MB.
const maxFragmentSize = 4 << 20

// Fetcher retrieves example-table fragments with a TTL cache. Concurrent
// requests for the same variant share one upstream fetch, mirroring the
// disabled-while-loading button on the rendered page.
type Fetcher struct {
	baseURL string
	client  *http.Client
	ttl     time.Duration

	mu       sync.Mutex
	cache    map[string]cacheEntry
	inflight map[string]*call
}

type cacheEntry struct {
	fragment  string
	fetchedAt time.Time
}

type call struct {
	done     chan struct{}
	fragment string
	err      error
}

// NewFetcher creates a Fetcher against the given base URL. A zero ttl
// disables caching; an empty baseURL uses DefaultBaseURL.
func NewFetcher(baseURL string, ttl time.Duration) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
		ttl:      ttl,
		cache:    make(map[string]cacheEntry),
		inflight: make(map[string]*call),
	}
}

// URL returns the fragment URL for a dataset variant, e.g.
// {base}/d4rl_adroit_door-human-v0.html.
func (f *Fetcher) URL(dataset, variant string) string {
	return fmt.Sprintf("%s/%s-%s.html", f.baseURL, dataset, variant)
}

// Fragment returns the example-table HTML for a dataset variant, from
// cache when fresh. All failures map to ErrUnavailable; the underlying
// cause is attached for logs but callers display only the generic text.
func (f *Fetcher) Fragment(ctx context.Context, dataset, variant string) (string, error) {
	key := dataset + "/" + variant

	f.mu.Lock()
	if entry, ok := f.cache[key]; ok && f.ttl > 0 && time.Since(entry.fetchedAt) < f.ttl {
		f.mu.Unlock()
		return entry.fragment, nil
	}
	if c, ok := f.inflight[key]; ok {
		f.mu.Unlock()
		select {
		case <-c.done:
			return c.fragment, c.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c := &call{done: make(chan struct{})}
	f.inflight[key] = c
	f.mu.Unlock()

	c.fragment, c.err = f.fetch(ctx, dataset, variant)
	close(c.done)

	f.mu.Lock()
	delete(f.inflight, key)
	if c.err == nil && f.ttl > 0 {
		f.cache[key] = cacheEntry{fragment: c.fragment, fetchedAt: time.Now()}
	}
	f.mu.Unlock()

	return c.fragment, c.err
}

func (f *Fetcher) fetch(ctx context.Context, dataset, variant string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(dataset, variant), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: upstream status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return string(body), nil
}
