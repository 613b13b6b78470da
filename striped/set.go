package striped

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/concset"
	"github.com/IvanBrykalov/concset/elem"
	"github.com/IvanBrykalov/concset/internal/singleflight"
	"github.com/IvanBrykalov/concset/internal/util"
	"github.com/IvanBrykalov/concset/lock"
)

// entry is one element in a bucket chain (most recently inserted first).
// The hash is cached so resize does not call the Hasher again.
type entry[T comparable] struct {
	val  T
	hash uint64
	next *entry[T]
}

// Set is a chained hash set guarded by a fixed number of stripe locks.
// Bucket b is guarded by stripe b mod len(stripes); because the bucket
// count is always a multiple of the stripe count, an element's stripe
// (hash mod stripes) and bucket (hash mod capacity) agree for the life of
// the set. All methods are safe for concurrent use.
type Set[T comparable] struct {
	stripes []lock.RWLocker // fixed at construction

	// ---- guarded by stripes ----
	// Bucket heads are read/written under their stripe; the slice header
	// itself is replaced only while every stripe is write-locked.
	table []*entry[T]

	hash    elem.Hasher[T]
	growth  int
	maxLoad float64
	opt     Options[T]
	log     *zap.Logger

	// coalesces resize requests that observed the same capacity
	grow singleflight.Group[int, bool]

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_        util.CacheLinePad
	size     util.PaddedAtomicInt64
	inserts  util.PaddedAtomicUint64
	removes  util.PaddedAtomicUint64
	resizes  atomic.Uint64
	capacity atomic.Int64 // mirrors len(table); written under all stripes
}

// New constructs a striped set. It panics if opt fails Validate.
func New[T comparable](opt Options[T]) *Set[T] {
	if err := opt.Validate(); err != nil {
		panic(err)
	}
	opt = opt.withDefaults()

	s := &Set[T]{
		stripes: lock.NewStripes(opt.Locking, opt.ConcurrencyLevel),
		table:   make([]*entry[T], opt.InitialCapacity),
		hash:    opt.Hasher,
		growth:  opt.GrowthFactor,
		maxLoad: opt.LoadFactor,
		opt:     opt,
		log: opt.Logger.With(
			zap.String("set", "striped"),
			zap.Int("stripes", opt.ConcurrencyLevel),
		),
	}
	s.capacity.Store(int64(opt.InitialCapacity))
	return s
}

// ---- concset.Set[T] implementation ----

// Insert adds v and returns true, or returns false if v is already present.
// If the table is over its load factor the set is grown first and the
// insert is retried; nothing is applied before the retry.
func (s *Set[T]) Insert(v T) bool {
	h := s.hash(v)
	l := s.stripeFor(h)
	for {
		l.Lock()
		b := util.Index(h, len(s.table))
		if s.find(b, h, v) != nil {
			l.Unlock()
			s.opt.Metrics.Insert(false)
			return false
		}
		if s.overloaded() {
			observed := len(s.table)
			l.Unlock()
			s.growFrom(observed)
			continue
		}
		s.table[b] = &entry[T]{val: v, hash: h, next: s.table[b]}
		n := s.size.Add(1)
		l.Unlock()

		s.inserts.Add(1)
		s.opt.Metrics.Insert(true)
		s.opt.Metrics.Size(int(n))
		return true
	}
}

// Remove deletes v and returns true, or returns false if v is absent.
func (s *Set[T]) Remove(v T) bool {
	h := s.hash(v)
	l := s.stripeFor(h)
	l.Lock()

	b := util.Index(h, len(s.table))
	for pp := &s.table[b]; *pp != nil; pp = &(*pp).next {
		if e := *pp; e.hash == h && e.val == v {
			*pp = e.next
			n := s.size.Add(-1)
			l.Unlock()

			s.removes.Add(1)
			s.opt.Metrics.Remove(true)
			s.opt.Metrics.Size(int(n))
			return true
		}
	}
	l.Unlock()
	s.opt.Metrics.Remove(false)
	return false
}

// Contains reports whether v is present. It takes the stripe's read lock,
// so with lock.ReadWrite lookups on one stripe proceed in parallel.
func (s *Set[T]) Contains(v T) bool {
	h := s.hash(v)
	l := s.stripeFor(h)
	l.RLock()
	found := s.find(util.Index(h, len(s.table)), h, v) != nil
	l.RUnlock()

	s.opt.Metrics.Contains(found)
	return found
}

// Size returns the element count. Exact only at quiescence.
func (s *Set[T]) Size() int { return int(s.size.Load()) }

// Capacity returns the current number of buckets.
func (s *Set[T]) Capacity() int { return int(s.capacity.Load()) }

// Stripes returns the number of stripe locks.
func (s *Set[T]) Stripes() int { return len(s.stripes) }

// Stats is a point-in-time view of the set's counters.
type Stats struct {
	Size     int
	Capacity int
	Stripes  int
	Inserts  uint64 // successful inserts
	Removes  uint64 // successful removes
	Resizes  uint64
}

// LoadFactor returns Size/Capacity.
func (st Stats) LoadFactor() float64 {
	if st.Capacity == 0 {
		return 0
	}
	return float64(st.Size) / float64(st.Capacity)
}

// Stats returns the current counters. Fields are read independently and
// are not a consistent snapshot while mutations are in flight.
func (s *Set[T]) Stats() Stats {
	return Stats{
		Size:     s.Size(),
		Capacity: s.Capacity(),
		Stripes:  len(s.stripes),
		Inserts:  s.inserts.Load(),
		Removes:  s.removes.Load(),
		Resizes:  s.resizes.Load(),
	}
}

// ---- helpers ----

// stripeFor picks the stripe lock for a hash.
func (s *Set[T]) stripeFor(h uint64) lock.RWLocker {
	return s.stripes[util.Index(h, len(s.stripes))]
}

// find scans bucket b for v. Caller holds the bucket's stripe.
func (s *Set[T]) find(b int, h uint64, v T) *entry[T] {
	for e := s.table[b]; e != nil; e = e.next {
		if e.hash == h && e.val == v {
			return e
		}
	}
	return nil
}

// overloaded reports whether Size/Capacity exceeds the load factor.
// Caller holds at least one stripe (len(table) is stable).
func (s *Set[T]) overloaded() bool {
	return float64(s.size.Load())/float64(len(s.table)) > s.maxLoad
}

// Compile-time check: Set implements concset.Set.
var _ concset.Set[int] = (*Set[int])(nil)
