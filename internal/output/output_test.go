package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	okOutcome = &plugin.Outcome{
		Address:  "https://www.facebook.com/watch/?v=1",
		Result:   &plugin.Result{HD: "https://video.fbcdn.net/hd.mp4", Title: "My Clip"},
		Duration: 1500 * time.Millisecond,
	}
	failOutcome = &plugin.Outcome{
		Address:  "https://www.facebook.com/watch/?v=2",
		Err:      plugin.NewResolutionError(plugin.ErrNoMatch),
		Duration: 80 * time.Millisecond,
	}
	summary = &plugin.Summary{
		StartedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:  2 * time.Second,
		Total:     2,
		Resolved:  1,
		Failed:    1,
	}
)

func TestTextWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w := NewTextWriter(path, "v1.2.3")

	require.NoError(t, w.WriteResult(okOutcome))
	require.NoError(t, w.WriteResult(failOutcome))
	require.NoError(t, w.Finalize(summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "REELFANG v1.2.3")
	assert.Contains(t, out, "[OK]   https://www.facebook.com/watch/?v=1 (1.5s)")
	assert.Contains(t, out, "+-- hd: https://video.fbcdn.net/hd.mp4")
	assert.Contains(t, out, "+-- title: My Clip")
	assert.NotContains(t, out, "+-- sd:")
	assert.Contains(t, out, "[FAIL] https://www.facebook.com/watch/?v=2 (80ms)")
	assert.Contains(t, out, "+-- error: "+plugin.FailureMessage)
	assert.Contains(t, out, "1 resolved, 1 failed of 2")
}

func TestJSONWriterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	w := NewJSONWriter(path)

	require.NoError(t, w.WriteResult(okOutcome))
	require.NoError(t, w.WriteResult(failOutcome))
	require.NoError(t, w.Finalize(summary))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Results []Record       `json:"results"`
		Summary plugin.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Results, 2)
	assert.Equal(t, Record{URL: okOutcome.Address, HD: "https://video.fbcdn.net/hd.mp4", Title: "My Clip", DurationMS: 1500}, doc.Results[0])
	assert.Equal(t, plugin.FailureMessage, doc.Results[1].Error)
	assert.Empty(t, doc.Results[1].HD)
	assert.Equal(t, 1, doc.Summary.Failed)
}

func TestJSONStreamWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONStreamWriter(&buf)
	require.NoError(t, w.Finalize(&plugin.Summary{}))
	assert.Contains(t, buf.String(), `"results": []`)
}

func TestFmtDur(t *testing.T) {
	assert.Equal(t, "250ms", FmtDur(250*time.Millisecond))
	assert.Equal(t, "2.5s", FmtDur(2500*time.Millisecond))
	assert.Equal(t, "2m5s", FmtDur(125*time.Second))
}

func TestFields(t *testing.T) {
	assert.Nil(t, Fields(nil))
	f := Fields(&plugin.Result{SD: "s", Thumbnail: "t"})
	assert.Equal(t, []Field{{"sd", "s"}, {"thumbnail", "t"}}, f)
}

func TestMultiWriter(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "out.txt")
	m := Multi(NewJSONStreamWriter(&buf), NewTextWriter(path, "v1"))

	require.NoError(t, m.WriteResult(okOutcome))
	require.NoError(t, m.Finalize(summary))

	assert.Contains(t, buf.String(), `"hd": "https://video.fbcdn.net/hd.mp4"`)
	_, err := os.Stat(path)
	assert.NoError(t, err)

	bad := Multi(NewTextWriter(filepath.Join(t.TempDir(), "missing", "out.txt"), "v1"))
	assert.Error(t, bad.Finalize(summary))
}
