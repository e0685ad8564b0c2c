package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

// DefaultUserAgent identifies as a desktop browser. The platform serves
// reduced markup to clients it does not recognise.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// HTTPFetcher uses Colly for plain HTTP retrieval.
type HTTPFetcher struct {
	collector *colly.Collector
	userAgent string
	headers   map[string]string
}

// HTTPFetcherConfig holds configuration for the HTTP fetcher.
type HTTPFetcherConfig struct {
	UserAgent        string
	Timeout          time.Duration
	MaxResponseSize  int
	Proxy            string
	CustomHeaders    []string
	DisableRedirects bool
}

// NewHTTPFetcher creates a new Colly-based HTTP fetcher.
func NewHTTPFetcher(cfg HTTPFetcherConfig) (*HTTPFetcher, error) {
	c := colly.NewCollector(
		colly.Async(false), // each attempt runs in its own goroutine already
		colly.AllowURLRevisit(),
	)

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	c.UserAgent = ua

	if cfg.Timeout > 0 {
		c.SetRequestTimeout(cfg.Timeout)
	}

	if cfg.Proxy != "" {
		if err := c.SetProxy(cfg.Proxy); err != nil {
			return nil, fmt.Errorf("set proxy: %w", err)
		}
	}

	if cfg.MaxResponseSize > 0 {
		c.MaxBodySize = cfg.MaxResponseSize
	}

	if cfg.DisableRedirects {
		c.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		})
	}

	return &HTTPFetcher{collector: c, userAgent: ua, headers: parseHeaders(cfg.CustomHeaders)}, nil
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (*plugin.PageData, error) {
	start := time.Now()

	page := &plugin.PageData{
		URL:         targetURL,
		FinalURL:    targetURL,
		FetcherUsed: "http",
		FetchedAt:   start,
	}

	// Clone the collector for this individual fetch so concurrent attempts
	// never share callbacks. Clones share the transport but not callbacks.
	c := f.collector.Clone()
	c.Context = ctx

	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		for k, v := range f.headers {
			r.Headers.Set(k, v)
		}
	})

	c.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
		page.Body = string(r.Body)
		page.ResponseSize = len(r.Body)
		page.FinalURL = r.Request.URL.String()
		page.ContentType = r.Headers.Get("Content-Type")
		page.Headers = r.Headers.Clone()
	})

	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil {
			page.StatusCode = r.StatusCode
			if r.Request != nil {
				page.FinalURL = r.Request.URL.String()
			}
		}
		page.Error = err.Error()
	})

	err := c.Visit(targetURL)
	c.Wait()
	page.FetchDuration = time.Since(start)

	if err == nil {
		err = fetchErr
	}
	if err != nil {
		page.Error = err.Error()
		return page, &TransportError{URL: targetURL, StatusCode: page.StatusCode, Err: err}
	}
	if page.StatusCode < 200 || page.StatusCode >= 300 {
		err := &TransportError{URL: targetURL, StatusCode: page.StatusCode, Err: fmt.Errorf("unexpected status %d", page.StatusCode)}
		page.Error = err.Error()
		return page, err
	}

	return page, nil
}

func (f *HTTPFetcher) Close() error {
	return nil
}

// TransportError is a retrieval that could not complete.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func parseHeaders(raw []string) map[string]string {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) == 2 {
			headers[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return headers
}
