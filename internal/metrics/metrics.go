// Package metrics exposes resolver activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ramkansal/reelfang/pkg/plugin"
)

const namespace = "reelfang"

// Recorder holds the resolver metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	resolutions     *prometheus.CounterVec
	resolveDuration prometheus.Histogram
	strategyMatches *prometheus.CounterVec
}

// NewRecorder creates a recorder. Go runtime and process collectors are
// registered alongside when withRuntime is set.
func NewRecorder(withRuntime bool) *Recorder {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attempt",
				Name:      "total",
				Help:      "Retrieval attempts by channel and outcome",
			},
			[]string{"channel", "outcome"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "attempt",
				Name:      "duration_seconds",
				Help:      "Time spent on finished retrieval attempts",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
			},
			[]string{"channel"},
		),
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Finished resolutions by result",
			},
			[]string{"result"},
		),
		resolveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolve_duration_seconds",
				Help:      "End-to-end resolution time",
				Buckets:   prometheus.DefBuckets,
			},
		),
		strategyMatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "strategy_matches_total",
				Help:      "Extraction strategies that produced the result",
			},
			[]string{"strategy"},
		),
	}
}

// Observe is a plugin.Observer.
func (m *Recorder) Observe(ev plugin.Event) {
	switch ev.Type {
	case plugin.EventAttemptSucceeded, plugin.EventAttemptTransportFailed, plugin.EventAttemptRejected:
		m.attemptsTotal.WithLabelValues(ev.Channel, ev.Type.String()).Inc()
		m.attemptDuration.WithLabelValues(ev.Channel).Observe(ev.Duration.Seconds())
	case plugin.EventStrategyMatched:
		m.strategyMatches.WithLabelValues(ev.Strategy).Inc()
	case plugin.EventResolveFinished:
		m.resolutions.WithLabelValues(resultLabel(ev.Error)).Inc()
		m.resolveDuration.Observe(ev.Duration.Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Recorder) Registry() *prometheus.Registry { return m.registry }

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "resolved"
	case errors.Is(err, plugin.ErrNoMatch):
		return "no_match"
	case errors.Is(err, plugin.ErrExhausted):
		return "exhausted"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "canceled"
	}
}
