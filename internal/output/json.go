package output

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Record is the JSON shape of one outcome.
type Record struct {
	URL        string `json:"url"`
	SD         string `json:"sd,omitempty"`
	HD         string `json:"hd,omitempty"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	Title      string `json:"title,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// NewRecord flattens an outcome.
func NewRecord(o *plugin.Outcome) Record {
	rec := Record{URL: o.Address, DurationMS: o.Duration.Milliseconds()}
	if o.Err != nil {
		rec.Error = o.Err.Error()
		return rec
	}
	if r := o.Result; r != nil {
		rec.SD, rec.HD, rec.Thumbnail, rec.Title = r.SD, r.HD, r.Thumbnail, r.Title
	}
	return rec
}

type document struct {
	Results []Record        `json:"results"`
	Summary *plugin.Summary `json:"summary"`
}

// JSONWriter collects outcomes and writes one JSON document on Finalize.
// An empty path writes to the configured stream instead of a file.
type JSONWriter struct {
	path    string
	stream  io.Writer
	records []Record
	mu      sync.Mutex
}

// NewJSONWriter creates a writer targeting path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// NewJSONStreamWriter creates a writer targeting w.
func NewJSONStreamWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{stream: w}
}

func (w *JSONWriter) Name() string { return "json" }

func (w *JSONWriter) WriteResult(o *plugin.Outcome) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.records = append(w.records, NewRecord(o))
	return nil
}

func (w *JSONWriter) Finalize(summary *plugin.Summary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := document{Results: w.records, Summary: summary}
	if doc.Results == nil {
		doc.Results = []Record{}
	}

	if w.path == "" {
		enc := json.NewEncoder(w.stream)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, append(data, '\n'), 0644)
}
