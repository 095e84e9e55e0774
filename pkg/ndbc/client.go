package ndbc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/swellwatch/buoy/pkg/cache"
	"github.com/swellwatch/buoy/pkg/httputil"
	"github.com/swellwatch/buoy/pkg/observability"
)

// DefaultBaseURL is the NDBC website root.
const DefaultBaseURL = "https://www.ndbc.noaa.gov"

// DefaultCacheTTL is how long fetched pages stay fresh. Station pages are
// regenerated by NDBC roughly hourly.
const DefaultCacheTTL = time.Hour

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a page or station doesn't exist on the site.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrNoStation is returned when a station page exists but carries no
	// usable station metadata (no observation feed link or no coordinates).
	ErrNoStation = errors.New("station metadata not found")

	// ErrNoReport is returned when a station page carries no observation table.
	ErrNoReport = errors.New("observation report not found")
)

// IsNotFound reports whether err means the requested station or report
// doesn't exist, as opposed to a transient fetch or parse failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrNoStation) ||
		errors.Is(err, ErrNoReport)
}

// Client fetches and parses pages from the NDBC website.
// It handles caching, retry logic, and common request headers.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the NDBC site root. Used in tests to point the
// client at a local fixture server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCacheTTL overrides how long fetched pages stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// NewClient creates an NDBC client with the given cache backend.
// Pages are cached under the "ndbc:" namespace. Use cache.NewNullCache()
// to disable caching.
func NewClient(backend cache.Cache, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.Namespace(backend, "ndbc:"),
		ttl:     DefaultCacheTTL,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// page fetches an HTML page, serving it from cache when possible.
// The cache key is the path plus encoded query. If refresh is true the
// cache is bypassed and the fetched page replaces any stale entry.
func (c *Client) page(ctx context.Context, path string, query url.Values, refresh bool) (string, error) {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if !refresh {
		if data, hit, _ := c.cache.Get(ctx, key); hit {
			observability.Cache().OnCacheHit(ctx, "page")
			return string(data), nil
		}
		observability.Cache().OnCacheMiss(ctx, "page")
	}

	var body string
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		body, err = c.fetch(ctx, key)
		return err
	})
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, []byte(body), c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "page", len(body))
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, pathAndQuery string) (string, error) {
	u := c.baseURL + "/" + pathAndQuery

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	host := req.URL.Host
	observability.HTTP().OnRequest(ctx, http.MethodGet, host, req.URL.Path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, host, req.URL.Path, err)
		return "", &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, http.MethodGet, host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return "", err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	return string(data), nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// stationPage fetches the page for a single station.
func (c *Client) stationPage(ctx context.Context, id int, refresh bool) (string, error) {
	q := url.Values{}
	q.Set("station", fmt.Sprint(id))
	page, err := c.page(ctx, "station_page.php", q, refresh)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("%w: station %d", err, id)
		}
		return "", err
	}
	return page, nil
}
