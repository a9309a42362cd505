package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/screenlog/go-library-backend/internal/domain"
)

// detailsCacheTTL bounds how long a fetched item is served from memory.
// Catalog metadata changes rarely; a day keeps repeat list renders cheap.
const detailsCacheTTL = 24 * time.Hour

// TMDBClient implements Client against a TMDB-compatible HTTP API
// (api.themoviedb.org/3 or a proxy with the same shape).
//
// Details responses are cached in memory with a TTL so that re-rendering a
// library list does not re-fetch every item. Failures and not-founds are
// never cached.
type TMDBClient struct {
	baseURL string
	token   string
	httpc   *http.Client

	cacheMu sync.RWMutex
	cache   map[string]*cacheEntry
}

type cacheEntry struct {
	meta      *Metadata
	fetchedAt time.Time
}

// NewTMDBClient builds a client for the given base URL (no trailing slash)
// authenticating with a bearer token. timeout bounds each HTTP call; zero
// means 10s.
func NewTMDBClient(baseURL, token string, timeout time.Duration) *TMDBClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TMDBClient{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
		cache:   make(map[string]*cacheEntry),
	}
}

// Details fetches metadata for one item from GET {base}/{type}/{id}.
// A 404 maps to ErrNotFound; other non-2xx statuses are transport errors.
func (c *TMDBClient) Details(ctx context.Context, mt domain.MediaType, mediaID int64) (*Metadata, error) {
	key := fmt.Sprintf("%s:%d", mt, mediaID)

	c.cacheMu.RLock()
	if e, ok := c.cache[key]; ok && time.Since(e.fetchedAt) < detailsCacheTTL {
		c.cacheMu.RUnlock()
		return e.meta, nil
	}
	c.cacheMu.RUnlock()

	var meta Metadata
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s/%d", c.baseURL, mt, mediaID), &meta); err != nil {
		return nil, err
	}
	meta.MediaType = mt

	c.cacheMu.Lock()
	c.cache[key] = &cacheEntry{meta: &meta, fetchedAt: time.Now()}
	c.cacheMu.Unlock()

	return &meta, nil
}

// Search queries GET {base}/search/multi and keeps only movie/TV results
// (the endpoint also returns people).
func (c *TMDBClient) Search(ctx context.Context, query string) ([]Metadata, error) {
	u := fmt.Sprintf("%s/search/multi?query=%s&include_adult=false", c.baseURL, url.QueryEscape(query))

	var body struct {
		Results []Metadata `json:"results"`
	}
	if err := c.getJSON(ctx, u, &body); err != nil {
		return nil, err
	}

	out := make([]Metadata, 0, len(body.Results))
	for _, r := range body.Results {
		if r.MediaType.Valid() {
			out = append(out, r)
		}
	}
	return out, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into dst.
func (c *TMDBClient) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}
