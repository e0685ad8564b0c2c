package output

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// TextWriter writes resolution results to a plain text file,
// mirroring the terminal output (without ANSI color codes).
type TextWriter struct {
	path    string
	version string
	lines   []string
	mu      sync.Mutex
}

// NewTextWriter creates a new plain-text output writer.
func NewTextWriter(path, version string) *TextWriter {
	return &TextWriter{path: path, version: version}
}

func (w *TextWriter) Name() string { return "text" }

func (w *TextWriter) WriteResult(o *plugin.Outcome) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if o.Err != nil {
		w.lines = append(w.lines, fmt.Sprintf("  [FAIL] %s (%s)", o.Address, FmtDur(o.Duration)))
		w.lines = append(w.lines, fmt.Sprintf("      +-- error: %s", o.Err))
		return nil
	}

	w.lines = append(w.lines, fmt.Sprintf("  [OK]   %s (%s)", o.Address, FmtDur(o.Duration)))
	for _, f := range Fields(o.Result) {
		w.lines = append(w.lines, fmt.Sprintf("      +-- %s: %s", f.Key, f.Value))
	}
	return nil
}

func (w *TextWriter) Finalize(summary *plugin.Summary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var b strings.Builder

	// Banner
	fmt.Fprintf(&b, "\n  REELFANG %s\n", w.version)
	b.WriteString("  Direct video links from shared pages\n")
	b.WriteString("  " + strings.Repeat("-", 58) + "\n\n")

	fmt.Fprintf(&b, "  Started: %s\n\n", summary.StartedAt.Format(time.RFC1123))

	for _, line := range w.lines {
		b.WriteString(line + "\n")
	}

	// Summary
	b.WriteString("\n  " + strings.Repeat("-", 50) + "\n")
	b.WriteString("  Resolution complete\n")
	fmt.Fprintf(&b, "    Links:  %d resolved, %d failed of %d\n", summary.Resolved, summary.Failed, summary.Total)
	fmt.Fprintf(&b, "    Time:   %s\n\n", FmtDur(summary.Duration))

	return os.WriteFile(w.path, []byte(b.String()), 0644)
}

// ---------- helpers ----------

// Field is one labelled line of a result.
type Field struct {
	Key   string
	Value string
}

// Fields lists the non-empty parts of a result in display order.
func Fields(r *plugin.Result) []Field {
	if r == nil {
		return nil
	}
	var out []Field
	for _, f := range []Field{
		{"title", r.Title},
		{"hd", r.HD},
		{"sd", r.SD},
		{"thumbnail", r.Thumbnail},
	} {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// FmtDur formats a duration compactly for terminal and text output.
func FmtDur(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
