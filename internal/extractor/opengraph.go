package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Player tags in preference order.
var playerMetaKeys = []string{
	"og:video:secure_url",
	"og:video:url",
	"og:video",
	"twitter:player:stream",
}

// OpenGraphStrategy falls back to link-preview meta tags. These carry
// only the standard-definition stream.
type OpenGraphStrategy struct{}

func NewOpenGraphStrategy() *OpenGraphStrategy { return &OpenGraphStrategy{} }

func (s *OpenGraphStrategy) Name() string { return "open_graph" }

func (s *OpenGraphStrategy) Extract(doc *plugin.Document) plugin.Candidate {
	dom, err := doc.DOM()
	if err != nil {
		return plugin.Candidate{}
	}
	for _, key := range playerMetaKeys {
		if u, ok := Sanitize(metaContent(dom, key)); ok {
			return plugin.Candidate{SD: u}
		}
	}
	return plugin.Candidate{}
}

// metaContent returns the content of the first <meta> whose property or
// name equals key.
func metaContent(dom *goquery.Document, key string) string {
	var content string
	dom.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		property, _ := s.Attr("property")
		name, _ := s.Attr("name")
		if !strings.EqualFold(property, key) && !strings.EqualFold(name, key) {
			return true
		}
		c, _ := s.Attr("content")
		if c = strings.TrimSpace(c); c == "" {
			return true
		}
		content = c
		return false
	})
	return content
}
