package resolver

import (
	"github.com/ramkansal/reelfang/internal/extractor"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Assemble packages the pipeline output and metadata into a result, or the
// single terminal error when no media link was found.
func Assemble(c plugin.Candidate, md extractor.Metadata) (*plugin.Result, error) {
	if c.Empty() {
		return nil, plugin.NewResolutionError(plugin.ErrNoMatch)
	}
	return &plugin.Result{
		HD:        c.HD,
		SD:        c.SD,
		Thumbnail: md.Thumbnail,
		Title:     md.Title,
	}, nil
}
