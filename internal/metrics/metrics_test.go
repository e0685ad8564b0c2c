package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ramkansal/reelfang/pkg/plugin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAttempts(t *testing.T) {
	m := NewRecorder(false)

	m.Observe(plugin.Event{Type: plugin.EventAttemptStarted, Channel: "direct"})
	m.Observe(plugin.Event{Type: plugin.EventAttemptSucceeded, Channel: "direct", Duration: 300 * time.Millisecond})
	m.Observe(plugin.Event{Type: plugin.EventAttemptTransportFailed, Channel: "corsproxy", Duration: time.Second})
	m.Observe(plugin.Event{Type: plugin.EventAttemptTransportFailed, Channel: "corsproxy", Duration: time.Second})
	m.Observe(plugin.Event{Type: plugin.EventAttemptRejected, Channel: "codetabs"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("direct", "attempt_succeeded")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("corsproxy", "transport_failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.attemptsTotal.WithLabelValues("codetabs", "validation_failed")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.attemptDuration))
}

func TestObserveResolutions(t *testing.T) {
	m := NewRecorder(false)

	m.Observe(plugin.Event{Type: plugin.EventStrategyMatched, Strategy: "structured"})
	m.Observe(plugin.Event{Type: plugin.EventResolveFinished})
	m.Observe(plugin.Event{Type: plugin.EventResolveFinished, Error: plugin.NewResolutionError(plugin.ErrNoMatch)})
	m.Observe(plugin.Event{Type: plugin.EventResolveFinished, Error: plugin.NewResolutionError(fmt.Errorf("%w: x", plugin.ErrExhausted))})
	m.Observe(plugin.Event{Type: plugin.EventResolveFinished, Error: context.Canceled})
	m.Observe(plugin.Event{Type: plugin.EventResolveFinished, Error: context.DeadlineExceeded})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.strategyMatches.WithLabelValues("structured")))
	for _, label := range []string{"resolved", "no_match", "exhausted", "canceled", "timeout"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues(label)), label)
	}
}

func TestHandler(t *testing.T) {
	m := NewRecorder(true)
	m.Observe(plugin.Event{Type: plugin.EventResolveFinished})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `reelfang_resolutions_total{result="resolved"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
