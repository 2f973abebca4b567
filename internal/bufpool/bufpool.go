// Package bufpool provides a reusable []byte pool for the reassembler's hot
// path, where every accepted segment's payload is copied into a pooled
// buffer that goes back to the pool once its builder completes or is
// discarded. Adapted from ygrebnov-workers/pool's Pool
// abstraction: the teacher's fixed/dynamic pools manage *worker values for a
// concurrent task-execution engine this module does not have (the session
// core has exactly one goroutine per stage, never a pool of concurrent
// executors — see DESIGN.md). Only the dynamic, sync.Pool-backed shape
// survives, repurposed to manage byte slices instead of workers.
package bufpool

import "sync"

// Pool hands out []byte buffers of at least a minimum capacity and takes them
// back for reuse. Safe for concurrent use, though the session core only ever
// drives it from a single goroutine per stage.
type Pool struct {
	pool sync.Pool
}

// New constructs a Pool whose Get returns buffers with at least minCap spare
// capacity on first allocation (subsequent Put buffers may carry more).
func New(minCap int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() interface{} {
				b := make([]byte, 0, minCap)
				return &b
			},
		},
	}
}

// Get returns a zero-length buffer with spare capacity, reused from a
// previous Put when available.
func (p *Pool) Get() []byte {
	b := p.pool.Get().(*[]byte)
	return (*b)[:0]
}

// Put returns buf to the pool for reuse. Callers must not use buf after
// calling Put.
func (p *Pool) Put(buf []byte) {
	b := buf[:0]
	p.pool.Put(&b)
}
