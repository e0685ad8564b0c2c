package extractor

import (
	"regexp"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// The platform has renamed these fields over time; earlier aliases are preferred.
var (
	hdAliases = []string{"hd_src", "browser_native_hd_url", "playable_url_quality_hd"}
	sdAliases = []string{"sd_src", "browser_native_sd_url", "playable_url"}
)

// StructuredStrategy scans embedded JSON for known media-URL keys.
type StructuredStrategy struct {
	hd []*regexp.Regexp
	sd []*regexp.Regexp
}

func NewStructuredStrategy() *StructuredStrategy {
	return &StructuredStrategy{
		hd: keyPatterns(hdAliases),
		sd: keyPatterns(sdAliases),
	}
}

func (s *StructuredStrategy) Name() string { return "structured" }

func (s *StructuredStrategy) Extract(doc *plugin.Document) plugin.Candidate {
	body := doc.Body()
	return plugin.Candidate{
		HD: firstSanitized(body, s.hd),
		SD: firstSanitized(body, s.sd),
	}
}

// keyPatterns matches "key":"value" with escaped quotes allowed in the value.
func keyPatterns(keys []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(keys))
	for i, k := range keys {
		out[i] = regexp.MustCompile(`"` + regexp.QuoteMeta(k) + `"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	}
	return out
}

// firstSanitized returns the first match, in pattern order, that sanitizes
// into an absolute URL.
func firstSanitized(body string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			if u, ok := Sanitize(m[1]); ok {
				return u
			}
		}
	}
	return ""
}
