// Package plugin defines the public types and interfaces for reelfang.
// External tools can import this package to write custom extraction
// strategies, fetchers, observers, or output writers without forking the project.
package plugin

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ---------- Core Data Types ----------

// PageData represents a single retrieved document.
type PageData struct {
	URL           string        `json:"url"`
	FinalURL      string        `json:"final_url"`
	StatusCode    int           `json:"status_code"`
	Headers       http.Header   `json:"-"`
	Body          string        `json:"-"`
	ContentType   string        `json:"content_type"`
	FetchedAt     time.Time     `json:"fetched_at"`
	FetchDuration time.Duration `json:"fetch_duration"`
	FetcherUsed   string        `json:"fetcher_used"`
	ResponseSize  int           `json:"response_size"`
	Error         string        `json:"error,omitempty"`
}

// Result is a successful resolution. At least one of SD or HD is set.
type Result struct {
	SD        string `json:"sd,omitempty"`
	HD        string `json:"hd,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Title     string `json:"title,omitempty"`
}

// HasMedia reports whether the result carries a usable media link.
func (r *Result) HasMedia() bool {
	return r != nil && (r.SD != "" || r.HD != "")
}

// Best returns the highest quality link available.
func (r *Result) Best() string {
	if r == nil {
		return ""
	}
	if r.HD != "" {
		return r.HD
	}
	return r.SD
}

// Candidate is the media pair yielded by a single extraction strategy.
type Candidate struct {
	HD string
	SD string
}

// Empty reports whether neither tier was found.
func (c Candidate) Empty() bool { return c.HD == "" && c.SD == "" }

// Document is an immutable retrieved body shared by all strategies.
// The DOM is parsed lazily on first use.
type Document struct {
	body string

	once sync.Once
	dom  *goquery.Document
	err  error
}

// NewDocument wraps a body for extraction.
func NewDocument(body string) *Document {
	return &Document{body: body}
}

// Body returns the raw markup.
func (d *Document) Body() string { return d.body }

// DOM returns the parsed document. The parse happens once.
func (d *Document) DOM() (*goquery.Document, error) {
	d.once.Do(func() {
		d.dom, d.err = goquery.NewDocumentFromReader(strings.NewReader(d.body))
	})
	return d.dom, d.err
}

// ---------- Errors ----------

var (
	// ErrNoMatch means a body was retrieved but no strategy found a media link.
	ErrNoMatch = errors.New("no extraction strategy matched")

	// ErrExhausted means every retrieval attempt failed transport or validation.
	ErrExhausted = errors.New("all retrieval attempts failed")
)

// FailureMessage is the single user-facing failure text.
const FailureMessage = "no downloadable video link found; make sure the video is public and the link is correct"

// ResolutionError is the only failure surfaced to callers.
type ResolutionError struct {
	Message string `json:"error"`
	cause   error
}

// NewResolutionError builds the terminal error for the given cause.
func NewResolutionError(cause error) *ResolutionError {
	return &ResolutionError{Message: FailureMessage, cause: cause}
}

func (e *ResolutionError) Error() string { return e.Message }

func (e *ResolutionError) Unwrap() error { return e.cause }

// ---------- Event Types ----------

// Event is a diagnostic notification emitted while resolving.
type Event struct {
	Type       EventType
	Resolution string
	Address    string
	Attempt    int
	Variant    string
	Channel    string
	URL        string
	Strategy   string
	Duration   time.Duration
	Error      error
	Message    string
}

// EventType identifies the kind of event.
type EventType int

const (
	EventResolveStarted EventType = iota
	EventAttemptStarted
	EventAttemptSucceeded
	EventAttemptTransportFailed
	EventAttemptRejected
	EventRaceWon
	EventRaceExhausted
	EventStrategyMatched
	EventNoMatch
	EventResolveFinished
)

var eventNames = map[EventType]string{
	EventResolveStarted:         "resolve_started",
	EventAttemptStarted:         "attempt_started",
	EventAttemptSucceeded:       "attempt_succeeded",
	EventAttemptTransportFailed: "transport_failed",
	EventAttemptRejected:        "validation_failed",
	EventRaceWon:                "race_won",
	EventRaceExhausted:          "race_exhausted",
	EventStrategyMatched:        "strategy_matched",
	EventNoMatch:                "no_match",
	EventResolveFinished:        "resolve_finished",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

// Observer receives diagnostic events. It may be called from several
// goroutines at once and must not block.
type Observer func(Event)

// ---------- Plugin Interfaces ----------

// Fetcher defines how documents are retrieved.
type Fetcher interface {
	// Name returns a human-readable identifier for this fetcher.
	Name() string

	// Fetch retrieves the document at the given URL.
	Fetch(ctx context.Context, url string) (*PageData, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Strategy is one ordered rule of the extraction pipeline.
type Strategy interface {
	// Name returns a human-readable identifier (e.g., "structured", "open_graph").
	Name() string

	// Extract returns the candidate found in the document, or an empty one.
	Extract(doc *Document) Candidate
}

// OutputWriter defines how resolution results are persisted.
type OutputWriter interface {
	// Name returns a human-readable identifier for this writer.
	Name() string

	// WriteResult writes a single address's outcome (called incrementally).
	WriteResult(outcome *Outcome) error

	// Finalize writes the final summary and closes resources.
	Finalize(summary *Summary) error
}

// Outcome pairs an input address with its result or error.
type Outcome struct {
	Address  string        `json:"address"`
	Result   *Result       `json:"result,omitempty"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Summary is the aggregate of a batch run.
type Summary struct {
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Duration   time.Duration `json:"duration"`
	Total      int           `json:"total"`
	Resolved   int           `json:"resolved"`
	Failed     int           `json:"failed"`
}
