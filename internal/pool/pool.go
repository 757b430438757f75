// Package pool provides a typed wrapper over sync.Pool.
// Used by argv for per-call token queues and by middleware for request records.
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool provides a generic, type-safe object pool
type Pool[T any] struct {
	pool    sync.Pool
	reset   func(*T) // Optional reset function called before reuse
	maxSize int64    // Maximum objects to keep (0 = unlimited)
	count   atomic.Int64
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.maxSize > 0 && p.count.Load() > 0 {
		p.count.Add(-1)
	}
	if p.reset != nil {
		p.reset(obj)
	}
	return obj
}

// Put returns an object to the pool for reuse. Objects beyond the configured
// max size are dropped for the garbage collector.
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}

	if p.maxSize > 0 {
		if p.count.Load() >= p.maxSize {
			return
		}
		p.count.Add(1)
	}

	p.pool.Put(obj)
}

// SetMaxSize sets the maximum number of objects to keep in the pool.
// Must be called before the pool is shared between goroutines.
func (p *Pool[T]) SetMaxSize(size int) {
	p.maxSize = int64(size)
}

// Stats returns approximate pool statistics
func (p *Pool[T]) Stats() (count int64, maxSize int) {
	return p.count.Load(), int(p.maxSize)
}
