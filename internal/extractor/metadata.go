package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Metadata is the descriptive data extracted alongside the media links.
type Metadata struct {
	Thumbnail string
	Title     string
}

var (
	thumbnailMetaKeys = []string{"og:image", "og:image:secure_url", "twitter:image"}
	titleMetaKeys     = []string{"og:title", "twitter:title"}
)

// MetadataExtractor extracts the page thumbnail and title. Neither gates
// success of a resolution.
type MetadataExtractor struct{}

func NewMetadataExtractor() *MetadataExtractor { return &MetadataExtractor{} }

func (e *MetadataExtractor) Name() string { return "metadata" }

func (e *MetadataExtractor) Extract(doc *plugin.Document) Metadata {
	dom, err := doc.DOM()
	if err != nil {
		return Metadata{}
	}

	var md Metadata
	for _, key := range thumbnailMetaKeys {
		if u, ok := Sanitize(metaContent(dom, key)); ok {
			md.Thumbnail = u
			break
		}
	}

	for _, key := range titleMetaKeys {
		if t := cleanTitle(metaContent(dom, key)); t != "" {
			md.Title = t
			break
		}
	}
	if md.Title == "" {
		md.Title = cleanTitle(dom.Find("title").First().Text())
	}
	return md
}

// cleanTitle collapses whitespace and bounds the length.
func cleanTitle(s string) string {
	return truncate(strings.Join(strings.Fields(s), " "), 300)
}

// truncate limits a string to maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
