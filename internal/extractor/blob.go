package extractor

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

var (
	blobHDKeys = []string{"hd_src"}
	blobSDKeys = []string{"src", "videoURL", "sd_src"}
)

// DataBlobStrategy inspects serialized attribute blobs (data-store="{...}")
// carried by lightweight markup.
type DataBlobStrategy struct {
	attrs []string
}

func NewDataBlobStrategy() *DataBlobStrategy {
	return &DataBlobStrategy{attrs: []string{"data-store", "data-video"}}
}

func (s *DataBlobStrategy) Name() string { return "data_blob" }

func (s *DataBlobStrategy) Extract(doc *plugin.Document) plugin.Candidate {
	if !s.mayContainBlob(doc.Body()) {
		return plugin.Candidate{}
	}
	dom, err := doc.DOM()
	if err != nil {
		return plugin.Candidate{}
	}

	var found plugin.Candidate
	for _, attr := range s.attrs {
		dom.Find("[" + attr + "]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			raw, _ := sel.Attr(attr)
			c := parseBlob(raw)
			if c.Empty() {
				return true
			}
			found = c
			return false
		})
		if !found.Empty() {
			break
		}
	}
	return found
}

func (s *DataBlobStrategy) mayContainBlob(body string) bool {
	for _, attr := range s.attrs {
		if strings.Contains(body, attr+"=") {
			return true
		}
	}
	return false
}

// parseBlob decodes one attribute blob. Unparseable blobs yield nothing.
func parseBlob(raw string) plugin.Candidate {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return plugin.Candidate{}
	}
	var blob map[string]any
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		return plugin.Candidate{}
	}
	return plugin.Candidate{
		HD: blobValue(blob, blobHDKeys),
		SD: blobValue(blob, blobSDKeys),
	}
}

func blobValue(blob map[string]any, keys []string) string {
	for _, k := range keys {
		v, ok := blob[k].(string)
		if !ok {
			continue
		}
		if u, ok := Sanitize(v); ok {
			return u
		}
	}
	return ""
}
