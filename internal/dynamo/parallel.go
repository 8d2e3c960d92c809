package dynamo

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the worker count used when a caller passes zero.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// ParallelFor splits [0, n) into at most workers contiguous chunks and runs fn
// on each chunk concurrently. It returns the first error reported by a chunk.
// With workers <= 1 the whole range runs on the calling goroutine.
func ParallelFor(n, workers int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 1 || n == 1 {
		return fn(0, n)
	}
	if workers > n {
		workers = n
	}

	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			return fn(start, end)
		})
	}
	return g.Wait()
}
