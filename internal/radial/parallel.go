package radial

import "sync"

// minChunk keeps goroutine overhead below the cost of the nodes it sweeps.
const minChunk = 64

// parallelFor runs fn over [lo, hi) split into at most workers chunks.
func parallelFor(lo, hi, workers int, fn func(start, end int)) {
	n := hi - lo
	if workers <= 1 || n <= minChunk {
		fn(lo, hi)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := lo; start < hi; start += chunkSize {
		end := start + chunkSize
		if end > hi {
			end = hi
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
