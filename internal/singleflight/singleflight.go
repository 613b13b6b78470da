// Package singleflight coalesces concurrent calls that share a key.
// The striped set uses it so that many writers tripping the load factor at
// the same capacity trigger one stop-the-world resize instead of a queue of
// them.
package singleflight

import "sync"

// Group runs fn at most once per key among overlapping callers.
//
// Concurrency notes:
//   - The first caller for a key becomes the leader and runs fn.
//   - Followers block on c.done. Publishing val happens-before close(c.done),
//     so followers observe the leader's result.
//   - There is no cancellation: followers wait for the leader to finish.
//     fn must not call Do for the same key (it would deadlock).
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done chan struct{} // closed when val is published
	val  V
}

// Do runs fn for key unless a call for key is already in flight, in which
// case it waits for that call and returns its result. shared reports whether
// the result came from another caller's fn.
func (g *Group[K, V]) Do(key K, fn func() V) (v V, shared bool) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, true
	}

	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	// The in-flight marker is removed even if fn panics so later callers
	// don't block forever.
	defer func() {
		g.mu.Lock()
		delete(g.m, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val = fn()
	return c.val, false
}

// InFlight reports how many keys currently have a running call.
func (g *Group[K, V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.m)
}
