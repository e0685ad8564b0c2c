// Package race provides a first-success combinator: launch N attempts at once,
// take the first that succeeds, and fail only when every attempt has failed.
package race

import (
	"context"
	"errors"
	"fmt"
)

// Func is a single attempt.
type Func[T any] func(ctx context.Context) (T, error)

// ExhaustedError is returned when every attempt failed.
type ExhaustedError struct {
	Attempts int
	Errs     []error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed", e.Attempts)
}

// Unwrap exposes the per-attempt errors to errors.Is and errors.As.
func (e *ExhaustedError) Unwrap() []error { return e.Errs }

// ErrNoAttempts is returned by First when called with an empty attempt list.
var ErrNoAttempts = errors.New("race: no attempts")

type outcome[T any] struct {
	index int
	value T
	err   error
}

// First runs every attempt concurrently and returns the value and index of
// the first one to succeed. It does not wait for the rest: losing attempts
// keep running until they finish on their own and their results are dropped.
// Losers are not cancelled; an attempt that must not outlive its usefulness
// should carry its own deadline.
//
// If ctx is done before any attempt succeeds, First returns ctx.Err().
func First[T any](ctx context.Context, attempts []Func[T]) (T, int, error) {
	var zero T
	if len(attempts) == 0 {
		return zero, -1, ErrNoAttempts
	}

	// Buffered to len(attempts) so an abandoned attempt never blocks on send.
	results := make(chan outcome[T], len(attempts))
	for i, fn := range attempts {
		go func(i int, fn Func[T]) {
			v, err := fn(ctx)
			results <- outcome[T]{index: i, value: v, err: err}
		}(i, fn)
	}

	errs := make([]error, len(attempts))
	for pending := len(attempts); pending > 0; pending-- {
		select {
		case r := <-results:
			if r.err == nil {
				return r.value, r.index, nil
			}
			errs[r.index] = r.err
		case <-ctx.Done():
			return zero, -1, ctx.Err()
		}
	}
	return zero, -1, &ExhaustedError{Attempts: len(attempts), Errs: errs}
}
