// Package parallel schedules row-partitioned pixel passes across worker
// goroutines.
//
// Every pass of the print pipeline (decomposition, screening, scuffing)
// touches each pixel independently and only reads shared state, so the
// natural unit of work is a contiguous row range. The pool splits the
// image into more chunks than workers so that rows with uneven cost
// (dense halftone regions vs. empty paper) still balance.
package parallel

import (
	"runtime"
	"sync"
)

// chunksPerWorker controls how finely rows are split. A few chunks per
// worker hides per-row cost variance without drowning in scheduling
// overhead.
const chunksPerWorker = 4

// Pool runs row-range passes on a fixed number of workers.
//
// Thread safety: Pool is safe for concurrent use; each Rows call manages
// its own completion independently.
type Pool struct {
	workers int
}

// New creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.workers
}

// Rows invokes fn over disjoint row ranges [y0, y1) covering [0, rows)
// and blocks until every range has completed. fn runs concurrently from
// multiple goroutines; ranges never overlap, so fn may write freely to
// per-row output within its range.
//
// With a single worker (or a single row) fn runs on the calling
// goroutine, which keeps small inputs allocation-free and simplifies
// debugging.
func (p *Pool) Rows(rows int, fn func(y0, y1 int)) {
	if rows <= 0 {
		return
	}
	if p.workers == 1 || rows == 1 {
		fn(0, rows)
		return
	}

	chunks := p.workers * chunksPerWorker
	if chunks > rows {
		chunks = rows
	}
	chunkSize := (rows + chunks - 1) / chunks

	type span struct{ y0, y1 int }
	work := make(chan span, chunks)
	for y := 0; y < rows; y += chunkSize {
		y1 := y + chunkSize
		if y1 > rows {
			y1 = rows
		}
		work <- span{y, y1}
	}
	close(work)

	workers := p.workers
	if workers > chunks {
		workers = chunks
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for s := range work {
				fn(s.y0, s.y1)
			}
		}()
	}
	wg.Wait()
}
