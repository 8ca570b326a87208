package multiband

import (
	"context"
	"runtime"
	"sync"
)

// defaultChunkSize bounds the number of frequencies handled per unit of
// work, which in turn bounds each worker's design-matrix working set on
// large grids.
const defaultChunkSize = 256

type span struct {
	lo, hi int
}

// forEachChunk evaluates the half-open frequency ranges [lo, hi) on a
// bounded worker pool. newWorker is called once per goroutine so every
// worker can own its scratch state (assembler buffers); chunk functions
// write only to disjoint per-frequency slots, so no locking is needed.
//
// Cancellation stops the submission of remaining chunks; chunks already
// running complete, and ctx.Err() is returned.
func forEachChunk(ctx context.Context, n, workers, chunkSize int, newWorker func() func(lo, hi int)) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if workers == 1 || n <= chunkSize {
		work := newWorker()
		for lo := 0; lo < n; lo += chunkSize {
			if err := ctx.Err(); err != nil {
				return err
			}
			work(lo, minInt(lo+chunkSize, n))
		}
		return nil
	}

	chunks := make(chan span)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := newWorker()
			for sp := range chunks {
				work(sp.lo, sp.hi)
			}
		}()
	}

	var err error
submit:
	for lo := 0; lo < n; lo += chunkSize {
		sp := span{lo, minInt(lo+chunkSize, n)}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break submit
		case chunks <- sp:
		}
	}
	close(chunks)
	wg.Wait()
	return err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
