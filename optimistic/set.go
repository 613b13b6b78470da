package optimistic

import (
	"cmp"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/concset"
	"github.com/IvanBrykalov/concset/arena"
	"github.com/IvanBrykalov/concset/elem"
	"github.com/IvanBrykalov/concset/internal/util"
	"github.com/IvanBrykalov/concset/lock"
)

// Set is a sorted linked set with optimistic fine-grained locking.
// All methods except Release are safe for concurrent use.
type Set[T cmp.Ordered] struct {
	head   *node[T]
	bounds elem.Bounds[T]

	// Arenas own every node and node lock; the set never frees either.
	nodes   *arena.Arena[node[T]]
	spins   *arena.Arena[lock.SpinLock]
	mutexes *arena.Arena[sync.Mutex]
	newLock func() sync.Locker

	maxRetries int
	opt        Options[T]
	log        *zap.Logger

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_       util.CacheLinePad
	size    util.PaddedAtomicInt64
	retries util.PaddedAtomicUint64
}

// New constructs an empty set holding only the two sentinels.
// It panics if opt fails Validate.
func New[T cmp.Ordered](opt Options[T]) *Set[T] {
	if err := opt.Validate(); err != nil {
		panic(err)
	}
	opt = opt.withDefaults()

	s := &Set[T]{
		bounds:     opt.Bounds,
		nodes:      arena.New[node[T]](opt.ChunkSize),
		maxRetries: opt.MaxRetries,
		opt:        opt,
		log: opt.Logger.With(
			zap.String("set", "optimistic"),
			zap.Stringer("node_lock", opt.NodeLock),
		),
	}
	switch opt.NodeLock {
	case MutexLocks:
		s.mutexes = arena.New[sync.Mutex](opt.ChunkSize)
		s.newLock = func() sync.Locker { return s.mutexes.Alloc() }
	default:
		s.spins = arena.New[lock.SpinLock](opt.ChunkSize)
		s.newLock = func() sync.Locker { return s.spins.Alloc() }
	}

	s.head = s.newNode(opt.Bounds.Min(), head)
	s.head.next.Store(s.newNode(opt.Bounds.Max(), tail))
	return s
}

// ---- concset.Set[T] implementation ----

// Insert adds v and returns true, or returns false if v is already present
// or lies outside the set's bounds.
func (s *Set[T]) Insert(v T) bool {
	if !elem.Within(s.bounds, v) {
		s.opt.Metrics.Insert(false)
		return false
	}
	// Lock-free fast path for duplicates; it also keeps the arena from
	// growing on repeated inserts of present values.
	if s.has(v) {
		s.opt.Metrics.Insert(false)
		return false
	}

	// Allocated before any node lock is taken: the arena may block, node
	// locks must only guard pointer stores.
	n := s.newNode(v, interior)

	for attempt := 0; ; attempt++ {
		e := s.locate(v)
		e.lock()
		if !e.valid() {
			e.unlock()
			s.backoff("insert", v, attempt)
			continue
		}
		if e.curr.holds(v) {
			// Lost a race with another insert of v; n stays in the arena
			// unreachable.
			e.unlock()
			s.opt.Metrics.Insert(false)
			return false
		}
		n.next.Store(e.curr)
		e.pred.next.Store(n) // publishes n to lock-free readers
		size := s.size.Add(1)
		e.unlock()

		s.opt.Metrics.Insert(true)
		s.opt.Metrics.Size(int(size))
		return true
	}
}

// Remove deletes v and returns true, or returns false if v is absent.
// The removed node is tombstoned and unlinked; readers already holding it
// keep seeing its element.
func (s *Set[T]) Remove(v T) bool {
	if !elem.Within(s.bounds, v) {
		s.opt.Metrics.Remove(false)
		return false
	}
	for attempt := 0; ; attempt++ {
		e := s.locate(v)
		e.lock()
		if !e.valid() {
			e.unlock()
			s.backoff("remove", v, attempt)
			continue
		}
		if !e.curr.holds(v) {
			e.unlock()
			s.opt.Metrics.Remove(false)
			return false
		}
		// curr is locked, so its successor cannot change underneath us.
		e.curr.marked.Store(true)
		e.pred.next.Store(e.curr.next.Load())
		size := s.size.Add(-1)
		e.unlock()

		s.opt.Metrics.Remove(true)
		s.opt.Metrics.Size(int(size))
		return true
	}
}

// Contains reports whether v is present. It takes no locks: successor
// pointers only move forward and elements never change, so the traversal
// always ends on a node that was on the list at some point during the call.
func (s *Set[T]) Contains(v T) bool {
	found := elem.Within(s.bounds, v) && s.has(v)
	s.opt.Metrics.Contains(found)
	return found
}

// Size returns the element count. Exact only at quiescence.
func (s *Set[T]) Size() int { return int(s.size.Load()) }

// Bounds returns the sentinel values.
func (s *Set[T]) Bounds() elem.Bounds[T] { return s.bounds }

// Stats is a point-in-time view of the set's counters.
type Stats struct {
	Size    int
	Retries uint64 // failed validations across all operations
	Nodes   int    // nodes ever allocated, sentinels and removed nodes included
}

// Stats returns the current counters.
func (s *Set[T]) Stats() Stats {
	return Stats{
		Size:    s.Size(),
		Retries: s.retries.Load(),
		Nodes:   s.nodes.Len(),
	}
}

// Release ends the lifetime of every node by releasing the arenas. The set
// must not be used afterwards; Insert on a released set panics.
func (s *Set[T]) Release() {
	s.nodes.Release()
	if s.spins != nil {
		s.spins.Release()
	}
	if s.mutexes != nil {
		s.mutexes.Release()
	}
	s.log.Debug("released", zap.Int("size", s.Size()))
}

// ---- helpers ----

// locate walks from head without locks and returns the edge around v:
// pred sorts before v, curr is the first node that does not.
func (s *Set[T]) locate(v T) edge[T] {
	pred := s.head
	curr := pred.next.Load()
	for curr.before(v) {
		pred = curr
		curr = curr.next.Load()
	}
	return edge[T]{pred: pred, curr: curr}
}

// has is the lock-free membership test behind Contains. v must be within
// bounds.
func (s *Set[T]) has(v T) bool {
	c := s.locate(v).curr
	return c.holds(v) && !c.marked.Load()
}

func (s *Set[T]) newNode(v T, k kind) *node[T] {
	n := s.nodes.Alloc()
	n.val = v
	n.kind = k
	n.lk = s.newLock()
	return n
}

// backoff records a failed validation and yields before the next attempt.
// Exhausting the retry budget is treated as a broken invariant.
func (s *Set[T]) backoff(op string, v T, attempt int) {
	s.retries.Add(1)
	s.opt.Metrics.Retry()

	if attempt+1 >= s.maxRetries {
		err := fmt.Errorf("%w: %s(%v) failed validation %d times", concset.ErrRetryBudgetExhausted, op, v, attempt+1)
		s.log.Error("optimistic retry budget exhausted", zap.Error(err))
		panic(err)
	}
	// The first few retries go straight back: the conflicting writer is
	// usually done already.
	for i := 4; i < min(attempt, 20); i++ {
		runtime.Gosched()
	}
}

// Compile-time check: Set implements concset.Set.
var _ concset.Set[int] = (*Set[int])(nil)
