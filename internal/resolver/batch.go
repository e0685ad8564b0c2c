package resolver

import (
	"context"
	"sync"
	"time"

	"github.com/ramkansal/reelfang/pkg/plugin"
)

// Batch resolves several addresses with at most Config.Parallelism running at
// once. Outcomes are returned, and handed to the writer, in input order.
// A nil writer is allowed.
func (r *Resolver) Batch(ctx context.Context, addrs []string, w plugin.OutputWriter) ([]*plugin.Outcome, *plugin.Summary, error) {
	started := time.Now()
	outcomes := make([]*plugin.Outcome, len(addrs))

	// Worker pool
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.config.Parallelism)

	for i, addr := range addrs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			outcomes[i] = &plugin.Outcome{Address: addr, Err: ctx.Err()}
			continue
		}

		wg.Add(1)
		go func(i int, addr string) {
			defer wg.Done()
			defer func() { <-sem }()

			t := time.Now()
			res, err := r.Resolve(ctx, addr)
			outcomes[i] = &plugin.Outcome{
				Address:  addr,
				Result:   res,
				Err:      err,
				Duration: time.Since(t),
			}
		}(i, addr)
	}

	wg.Wait()

	summary := &plugin.Summary{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Duration:   time.Since(started),
		Total:      len(addrs),
	}
	for _, o := range outcomes {
		if o.Err != nil {
			summary.Failed++
		} else {
			summary.Resolved++
		}
	}

	if w == nil {
		return outcomes, summary, nil
	}
	for _, o := range outcomes {
		if err := w.WriteResult(o); err != nil {
			return outcomes, summary, err
		}
	}
	return outcomes, summary, w.Finalize(summary)
}
