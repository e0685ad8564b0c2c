package resolver

import (
	"fmt"
	"time"

	"github.com/ramkansal/reelfang/internal/channel"
	"github.com/ramkansal/reelfang/internal/extractor"
	"github.com/ramkansal/reelfang/internal/fetcher"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Config holds all configuration for a resolver.
type Config struct {
	// Target platform and relay pool
	Platform channel.Platform
	Channels []channel.Channel

	// Request options
	UserAgent        string
	AttemptTimeout   time.Duration
	MaxResponseSize  int
	Proxy            string
	CustomHeaders    []string
	DisableRedirects bool
	FetcherMode      FetcherMode

	// Validation and extraction
	MinBodyLength   int
	MediaHosts      []string
	MediaExtensions []string

	// Batch
	Parallelism int

	// Browser fetcher
	BrowserBin     string
	BrowserTimeout time.Duration
	PageTimeout    time.Duration
}

// FetcherMode controls which fetcher performs retrieval attempts.
type FetcherMode string

const (
	FetcherHTTP    FetcherMode = "http"
	FetcherBrowser FetcherMode = "browser"
)

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	opts := extractor.DefaultOptions()
	return &Config{
		Platform:        channel.DefaultPlatform(),
		Channels:        channel.DefaultChannels(),
		UserAgent:       fetcher.DefaultUserAgent,
		AttemptTimeout:  20 * time.Second,
		MaxResponseSize: 8 << 20, // 8MB
		FetcherMode:     FetcherHTTP,
		MinBodyLength:   fetcher.DefaultMinBodyLength,
		MediaHosts:      opts.MediaHosts,
		MediaExtensions: opts.MediaExtensions,
		Parallelism:     4,
		BrowserTimeout:  30 * time.Second,
		PageTimeout:     15 * time.Second,
	}
}

// Validate checks the configuration for values the resolver cannot work with.
func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return channel.ErrNoChannels
	}
	if c.AttemptTimeout <= 0 {
		return fmt.Errorf("attempt timeout must be positive, got %s", c.AttemptTimeout)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be positive, got %d", c.Parallelism)
	}
	switch c.FetcherMode {
	case FetcherHTTP, FetcherBrowser:
	default:
		return fmt.Errorf("unknown fetcher mode %q", c.FetcherMode)
	}
	return nil
}

// NewFetcher builds the fetcher selected by FetcherMode.
func (c *Config) NewFetcher() (plugin.Fetcher, error) {
	if c.FetcherMode == FetcherBrowser {
		bf, err := fetcher.NewBrowserFetcher(fetcher.BrowserFetcherConfig{
			Timeout:     c.BrowserTimeout,
			PageTimeout: c.PageTimeout,
			UserAgent:   c.UserAgent,
			Headless:    true,
			Bin:         c.BrowserBin,
		})
		if err != nil {
			return nil, fmt.Errorf("browser fetcher: %w", err)
		}
		return bf, nil
	}

	hf, err := fetcher.NewHTTPFetcher(fetcher.HTTPFetcherConfig{
		UserAgent:        c.UserAgent,
		Timeout:          c.AttemptTimeout,
		MaxResponseSize:  c.MaxResponseSize,
		Proxy:            c.Proxy,
		CustomHeaders:    c.CustomHeaders,
		DisableRedirects: c.DisableRedirects,
	})
	if err != nil {
		return nil, fmt.Errorf("http fetcher: %w", err)
	}
	return hf, nil
}
