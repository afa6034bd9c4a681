package dipole

import "runtime"

// parallelRange splits the index range [0,n) into contiguous,
// non-overlapping chunks and calls fn(lo,hi) once per chunk, each on its
// own goroutine. This mirrors the worker-id/completion-channel
// handshake this codebase's render manager uses for its own
// embarrassingly-parallel sweeps: workers-1 goroutines are launched, the
// last chunk runs inline on the calling goroutine, and the caller drains
// one completion token per worker before returning. Because chunks are
// disjoint index ranges, fn never needs a lock to write into a slice
// indexed by the range it owns.
func parallelRange(n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	out := make(chan int, workers)
	run := func(id int) {
		lo := id * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo < hi {
			fn(lo, hi)
		}
		out <- id
	}

	for id := 0; id < workers-1; id++ {
		go run(id)
	}
	run(workers - 1)

	for i := 0; i < workers; i++ {
		<-out
	}
}
