package fetcher

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

// BrowserFetcher uses Rod (headless Chrome) to retrieve documents whose
// relay only answers script-capable clients.
type BrowserFetcher struct {
	browser     *rod.Browser
	timeout     time.Duration
	pageTimeout time.Duration
	userAgent   string
}

// BrowserFetcherConfig holds configuration for the browser fetcher.
type BrowserFetcherConfig struct {
	Timeout     time.Duration
	PageTimeout time.Duration
	UserAgent   string
	Headless    bool
	// Bin overrides the browser executable; empty lets rod find or download one.
	Bin string
}

// NewBrowserFetcher launches a browser and connects to it.
func NewBrowserFetcher(cfg BrowserFetcherConfig) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, err
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	pageTimeout := cfg.PageTimeout
	if pageTimeout == 0 {
		pageTimeout = 15 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &BrowserFetcher{
		browser:     browser,
		timeout:     timeout,
		pageTimeout: pageTimeout,
		userAgent:   ua,
	}, nil
}

func (f *BrowserFetcher) Name() string { return "browser" }

func (f *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (*plugin.PageData, error) {
	start := time.Now()

	page := &plugin.PageData{
		URL:         targetURL,
		FinalURL:    targetURL,
		FetcherUsed: "browser",
		FetchedAt:   start,
	}

	fail := func(err error) (*plugin.PageData, error) {
		page.Error = err.Error()
		page.FetchDuration = time.Since(start)
		return page, &TransportError{URL: targetURL, Err: err}
	}

	rodPage, err := f.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fail(err)
	}
	defer rodPage.Close()

	rodPage = rodPage.Timeout(f.timeout)

	if err := rodPage.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      f.userAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	}); err != nil {
		return fail(err)
	}

	if err := rodPage.Navigate(targetURL); err != nil {
		return fail(err)
	}

	// The page may never settle; whatever is rendered so far is still usable.
	if err := rodPage.WaitStable(f.pageTimeout); err != nil && !strings.Contains(err.Error(), "context canceled") {
		page.Error = "page did not fully stabilize: " + err.Error()
	}

	if info, err := rodPage.Info(); err == nil {
		page.FinalURL = info.URL
	}

	html, err := rodPage.HTML()
	if err != nil {
		return fail(err)
	}
	page.Body = html
	page.ResponseSize = len(html)
	// Navigation does not expose the document status; a rendered page is
	// treated as a success and left to the validator.
	page.StatusCode = 200
	page.ContentType = "text/html"
	page.FetchDuration = time.Since(start)
	return page, nil
}

func (f *BrowserFetcher) Close() error {
	if f.browser != nil {
		return f.browser.Close()
	}
	return nil
}
