package extractor

import (
	"regexp"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Lightweight markup links to the media through a redirect endpoint.
var redirectRe = regexp.MustCompile(`href="/video_redirect/\?src=([^"]+)"`)

// RedirectStrategy reads the redirect link found in lightweight markup.
// There is only one link, so it fills both tiers.
type RedirectStrategy struct{}

func NewRedirectStrategy() *RedirectStrategy { return &RedirectStrategy{} }

func (s *RedirectStrategy) Name() string { return "redirect" }

func (s *RedirectStrategy) Extract(doc *plugin.Document) plugin.Candidate {
	for _, m := range redirectRe.FindAllStringSubmatch(doc.Body(), -1) {
		if u, ok := Sanitize(m[1]); ok {
			return plugin.Candidate{HD: u, SD: u}
		}
	}
	return plugin.Candidate{}
}
