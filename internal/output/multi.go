package output

import (
	"errors"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// MultiWriter fans results out to several writers.
type MultiWriter struct {
	writers []plugin.OutputWriter
}

// Multi returns a writer that forwards to every ws in order.
func Multi(ws ...plugin.OutputWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

func (m *MultiWriter) Name() string { return "multi" }

func (m *MultiWriter) WriteResult(o *plugin.Outcome) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.WriteResult(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiWriter) Finalize(s *plugin.Summary) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Finalize(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
