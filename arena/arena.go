// Package arena implements a chunked slab allocator with arena-scoped
// lifetime: objects are handed out one at a time and are never freed
// individually; they all live until the arena is released.
//
// Chunks are never moved or resized once allocated, so a pointer returned
// by Alloc stays valid (and keeps pointing at the same object) for the
// arena's whole lifetime, regardless of later growth.
package arena

import (
	"sync"
	"sync/atomic"
)

// DefaultChunkSize is the number of objects per chunk when none is given.
const DefaultChunkSize = 1024

// Arena hands out zeroed *T values from fixed-size chunks.
// Alloc is safe for concurrent use.
type Arena[T any] struct {
	mu        sync.Mutex
	chunks    [][]T // guarded by mu
	cur       []T   // guarded by mu; tail chunk
	next      int   // guarded by mu; next free slot in cur
	chunkSize int
	released  bool // guarded by mu

	n atomic.Int64 // objects handed out
}

// New returns an arena with chunkSize objects per chunk
// (chunkSize <= 0 => DefaultChunkSize).
func New[T any](chunkSize int) *Arena[T] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena[T]{chunkSize: chunkSize}
}

// Alloc returns a pointer to a fresh zero T. The object is owned by the
// arena; there is no corresponding free. Alloc panics after Release.
func (a *Arena[T]) Alloc() *T {
	a.mu.Lock()
	if a.released {
		a.mu.Unlock()
		panic("arena: Alloc after Release")
	}
	if a.next == len(a.cur) {
		a.cur = make([]T, a.chunkSize)
		a.chunks = append(a.chunks, a.cur)
		a.next = 0
	}
	p := &a.cur[a.next]
	a.next++
	a.mu.Unlock()

	a.n.Add(1)
	return p
}

// Len returns the number of objects allocated so far.
func (a *Arena[T]) Len() int { return int(a.n.Load()) }

// Chunks returns the number of chunks backing the arena.
func (a *Arena[T]) Chunks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.chunks)
}

// Release ends the arena's lifetime. The arena drops its chunks; memory is
// reclaimed once no outstanding pointer refers into a chunk. Release is
// idempotent.
func (a *Arena[T]) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chunks, a.cur, a.next = nil, nil, 0
	a.released = true
}

// Released reports whether Release has been called.
func (a *Arena[T]) Released() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.released
}
