// Package pool provides a bounded worker pool for order-preserving
// parallel maps over in-memory slices.
//
// Scoring is embarrassingly parallel: items are independent and outputs
// are written to fixed indices, so completion order never affects results.
package pool

import (
	"context"
	"runtime"
	"sync"
)

// defaultWorkerMultiplier sizes the pool from the CPU count when callers
// pass a non-positive worker count.
const defaultWorkerMultiplier = 2

// Map applies fn to every element of in using at most workers goroutines,
// preserving input order in the output slice. It stops early when ctx is
// cancelled and reports the cancellation; outputs for unprocessed elements
// are left as zero values.
func Map[In, Out any](ctx context.Context, workers int, in []In, fn func(context.Context, In) Out) ([]Out, error) {
	if workers < 1 {
		workers = runtime.NumCPU() * defaultWorkerMultiplier
	}
	if workers > len(in) {
		workers = len(in)
	}

	out := make([]Out, len(in))
	if len(in) == 0 {
		return out, nil
	}

	indices := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				out[i] = fn(ctx, in[i])
			}
		}()
	}

feed:
	for i := range in {
		select {
		case <-ctx.Done():
			break feed
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
