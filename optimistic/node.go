package optimistic

import (
	"cmp"
	"sync"
	"sync/atomic"
)

// kind tells sentinels apart from element nodes. Sentinels are matched by
// position, never by value, so Min and Max themselves stay insertable.
type kind uint8

const (
	interior kind = iota
	head
	tail
)

// node is one list cell, allocated from the set's arena.
//
// val and kind are written once before the node is published through a
// predecessor's next pointer and never change afterwards, so lock-free
// readers holding a stale reference still see a consistent element.
//
// Lifecycle: active (reachable, unmarked) -> removed (marked, then
// unlinked). Storage is reclaimed only with the arena.
type node[T cmp.Ordered] struct {
	val    T
	kind   kind
	next   atomic.Pointer[node[T]]
	marked atomic.Bool
	lk     sync.Locker
}

// before reports whether the node sorts strictly before v.
// The tail sorts after everything.
func (n *node[T]) before(v T) bool {
	return n.kind == interior && n.val < v
}

// holds reports whether the node is an element node carrying v.
func (n *node[T]) holds(v T) bool {
	return n.kind == interior && n.val == v
}

// edge is the (pred, curr) pair around the position of a value.
// It exists for the duration of one operation.
type edge[T cmp.Ordered] struct {
	pred, curr *node[T]
}

// lock takes pred then curr. Every operation locks in list order, so two
// operations can never wait on each other's nodes in a cycle.
func (e edge[T]) lock() {
	e.pred.lk.Lock()
	e.curr.lk.Lock()
}

func (e edge[T]) unlock() {
	e.curr.lk.Unlock()
	e.pred.lk.Unlock()
}

// valid re-checks, under both locks, that the lock-free Locate result still
// describes the list: neither node was removed and pred still links to curr.
func (e edge[T]) valid() bool {
	return !e.pred.marked.Load() &&
		!e.curr.marked.Load() &&
		e.pred.next.Load() == e.curr
}
