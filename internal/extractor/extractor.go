package extractor

import (
	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Pipeline holds the ordered extraction strategies.
type Pipeline struct {
	strategies []plugin.Strategy
}

// Options tunes the built-in strategies.
type Options struct {
	// MediaHosts are the hostname suffixes accepted by the broad media scan.
	MediaHosts []string
	// MediaExtensions are the file extensions accepted by the broad media scan.
	MediaExtensions []string
}

// DefaultOptions returns the facebook CDN settings.
func DefaultOptions() Options {
	return Options{
		MediaHosts:      []string{"fbcdn.net"},
		MediaExtensions: []string{".mp4", ".m3u8", ".webm", ".mov"},
	}
}

// NewPipeline creates a pipeline with all built-in strategies in
// confidence order. The order decides which alias wins; do not reorder.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{
		strategies: []plugin.Strategy{
			NewStructuredStrategy(),
			NewRedirectStrategy(),
			NewDataBlobStrategy(),
			NewOpenGraphStrategy(),
			NewMediaScanStrategy(opts.MediaHosts, opts.MediaExtensions),
		},
	}
}

// NewPipelineWith builds a pipeline from an explicit strategy list.
func NewPipelineWith(strategies ...plugin.Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Register appends a custom strategy after the built-in ones.
func (p *Pipeline) Register(s plugin.Strategy) {
	p.strategies = append(p.strategies, s)
}

// Run walks the strategies in order and returns the first non-empty
// candidate along with the name of the strategy that produced it.
func (p *Pipeline) Run(doc *plugin.Document) (plugin.Candidate, string, bool) {
	return FirstMatch(p.strategies, func(s plugin.Strategy) (plugin.Candidate, bool) {
		c := s.Extract(doc)
		return c, !c.Empty()
	})
}

// FirstMatch applies fn to each item in order and stops at the first hit.
func FirstMatch[S interface{ Name() string }, T any](items []S, fn func(S) (T, bool)) (T, string, bool) {
	for _, it := range items {
		if v, ok := fn(it); ok {
			return v, it.Name(), true
		}
	}
	var zero T
	return zero, "", false
}

// Names returns the names of all registered strategies.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name()
	}
	return names
}
