package striped

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/concset"
	"github.com/IvanBrykalov/concset/internal/util"
)

// Resize grows the table by one growth step unconditionally and returns the
// new bucket count. Like the automatic resize it blocks every operation on
// the set for its duration.
func (s *Set[T]) Resize() int {
	s.lockAll()
	from, to, ok := s.growLocked(-1)
	s.unlockAll()
	s.logResize(from, to, ok, "manual")
	return s.Capacity()
}

// growFrom grows the table if it still has the observed capacity and is
// still over the load factor. Concurrent callers that observed the same
// capacity share one resize.
func (s *Set[T]) growFrom(observed int) {
	s.grow.Do(observed, func() bool {
		s.lockAll()
		from, to, ok := s.growLocked(observed)
		s.unlockAll()
		s.logResize(from, to, ok, "load factor")
		return ok
	})
}

// growLocked rehashes every element into growth × capacity buckets.
// Caller holds every stripe for writing. With observed >= 0 it only grows
// if the capacity is unchanged and the load factor is still exceeded
// (another goroutine may have resized while we waited for the stripes).
func (s *Set[T]) growLocked(observed int) (from, to int, ok bool) {
	from = len(s.table)
	if observed >= 0 && (from != observed || !s.overloaded()) {
		return from, from, false
	}
	if from > math.MaxInt/s.growth {
		return from, from, false
	}
	to = from * s.growth

	next := make([]*entry[T], to)
	for _, e := range s.table {
		for e != nil {
			succ := e.next
			b := util.Index(e.hash, to)
			e.next = next[b]
			next[b] = e
			e = succ
		}
	}
	s.table = next
	s.capacity.Store(int64(to))
	s.resizes.Add(1)
	s.opt.Metrics.Resize(from, to)
	return from, to, true
}

// lockAll write-locks every stripe in ascending index order. All
// multi-stripe acquisitions use this order, so they cannot deadlock.
func (s *Set[T]) lockAll() {
	for _, l := range s.stripes {
		l.Lock()
	}
}

func (s *Set[T]) unlockAll() {
	for i := len(s.stripes) - 1; i >= 0; i-- {
		s.stripes[i].Unlock()
	}
}

func (s *Set[T]) rlockAll() {
	for _, l := range s.stripes {
		l.RLock()
	}
}

func (s *Set[T]) runlockAll() {
	for i := len(s.stripes) - 1; i >= 0; i-- {
		s.stripes[i].RUnlock()
	}
}

func (s *Set[T]) logResize(from, to int, ok bool, reason string) {
	if !ok {
		s.log.Debug("resize skipped", zap.String("reason", reason), zap.Int("capacity", from))
		return
	}
	s.log.Debug("resized",
		zap.String("reason", reason),
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("size", s.Size()),
	)
}

// ---- whole-set views ----

// Snapshot returns every element, in no particular order. It read-locks all
// stripes, so it is a consistent view.
func (s *Set[T]) Snapshot() []T {
	s.rlockAll()
	defer s.runlockAll()

	out := make([]T, 0, s.size.Load())
	for _, e := range s.table {
		for ; e != nil; e = e.next {
			out = append(out, e.val)
		}
	}
	return out
}

// Range calls fn for each element of a Snapshot until fn returns false.
// fn runs without any lock held and may call back into the set.
func (s *Set[T]) Range(fn func(T) bool) {
	for _, v := range s.Snapshot() {
		if !fn(v) {
			return
		}
	}
}

// Check verifies the table's structural invariants: every element sits in
// bucket hash mod capacity, no bucket holds duplicates, the capacity is a
// multiple of the stripe count and the bucket lengths sum to Size(). The
// size comparison is only meaningful when no mutation is in flight.
func (s *Set[T]) Check() error {
	s.rlockAll()
	defer s.runlockAll()

	capacity := len(s.table)
	if capacity%len(s.stripes) != 0 {
		return fmt.Errorf("%w: capacity %d is not a multiple of %d stripes", concset.ErrCorrupted, capacity, len(s.stripes))
	}
	if int64(capacity) != s.capacity.Load() {
		return fmt.Errorf("%w: capacity mirror %d != table length %d", concset.ErrCorrupted, s.capacity.Load(), capacity)
	}

	total := 0
	for b, e := range s.table {
		seen := make(map[T]struct{})
		for ; e != nil; e = e.next {
			if h := s.hash(e.val); h != e.hash {
				return fmt.Errorf("%w: hash of %v changed (%d != %d)", concset.ErrCorrupted, e.val, h, e.hash)
			}
			if want := util.Index(e.hash, capacity); want != b {
				return fmt.Errorf("%w: %v in bucket %d, want %d", concset.ErrCorrupted, e.val, b, want)
			}
			if _, dup := seen[e.val]; dup {
				return fmt.Errorf("%w: duplicate %v in bucket %d", concset.ErrCorrupted, e.val, b)
			}
			seen[e.val] = struct{}{}
			total++
		}
	}
	if n := s.size.Load(); int64(total) != n {
		return fmt.Errorf("%w: %d elements in buckets, size counter %d", concset.ErrCorrupted, total, n)
	}
	return nil
}
