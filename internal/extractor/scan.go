package extractor

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/samber/lo"
)

// Absolute URLs, possibly with escaped slashes, up to a quote, space or tag.
var absoluteURLRe = regexp.MustCompile(`https?:(?:\\*/){2}[^"'\s<>]+`)

// Quote forms that end a URL embedded in entity- or backslash-escaped JSON.
var escapedQuotes = []string{`&quot;`, `&#34;`, `&#x22;`, `\u0022`, `\"`}

// MediaScanStrategy is the last resort: scan the whole body for media URLs
// on known delivery hosts. Longer URLs win since they are more likely to
// carry the signed token parameters the link needs to stay valid.
type MediaScanStrategy struct {
	hosts []string
	exts  []string
}

func NewMediaScanStrategy(hosts, exts []string) *MediaScanStrategy {
	return &MediaScanStrategy{
		hosts: lo.Map(hosts, func(h string, _ int) string { return strings.ToLower(strings.TrimPrefix(h, ".")) }),
		exts:  lo.Map(exts, func(e string, _ int) string { return strings.ToLower(e) }),
	}
}

func (s *MediaScanStrategy) Name() string { return "media_scan" }

func (s *MediaScanStrategy) Extract(doc *plugin.Document) plugin.Candidate {
	candidates := s.Candidates(doc.Body())
	if len(candidates) == 0 {
		return plugin.Candidate{}
	}
	longest := lo.MaxBy(candidates, func(a, b string) bool { return len(a) > len(b) })
	// Quality is unknown here; report it on the standard tier.
	return plugin.Candidate{SD: longest}
}

// Candidates returns every sanitized media URL found in body, deduplicated.
func (s *MediaScanStrategy) Candidates(body string) []string {
	var out []string
	for _, raw := range absoluteURLRe.FindAllString(body, -1) {
		u, ok := Sanitize(trimTrailingEscape(cutAtEscapedQuote(raw)))
		if !ok || strings.ContainsAny(u, `"<>`) || !s.accepts(u) {
			continue
		}
		out = append(out, u)
	}
	return lo.Uniq(out)
}

func (s *MediaScanStrategy) accepts(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	hostOK := lo.ContainsBy(s.hosts, func(h string) bool {
		return host == h || strings.HasSuffix(host, "."+h)
	})
	if !hostOK {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	return lo.Contains(s.exts, ext)
}

// cutAtEscapedQuote truncates s at the first escaped quote.
func cutAtEscapedQuote(s string) string {
	for _, q := range escapedQuotes {
		if i := strings.Index(s, q); i >= 0 {
			s = s[:i]
		}
	}
	return s
}

// trimTrailingEscape drops a dangling backslash left where the match ran
// into an escaped quote.
func trimTrailingEscape(s string) string {
	return strings.TrimRight(s, `\`)
}
