// Package concset provides generic concurrent sets that share one contract
// (Insert, Remove, Contains, Size) under two synchronization disciplines.
//
// # Design
//
//   - Striped hash set (package striped): a chained hash table whose buckets
//     are covered by a fixed number of stripe locks (stripe = hash mod
//     stripes). Readers take a stripe's read lock, writers its write lock.
//     The table grows when the load factor exceeds its limit: the resizing
//     goroutine takes every stripe lock in ascending order, re-checks the
//     load factor, and rehashes into growth-factor times as many buckets.
//     Resize serializes the whole set for its duration.
//
//   - Optimistic linked set (package optimistic): a strictly sorted singly
//     linked list between two sentinel nodes. Locate walks the list without
//     locks, then the two boundary nodes are locked (predecessor first) and
//     validated; a failed validation releases both and retries. Contains
//     never locks. Nodes come from an arena (package arena) and are never
//     freed individually: a removed node is tombstoned and unlinked, and
//     stays readable until the set is released.
//
//   - Locks (package lock): an exchange-based SpinLock for node locks, and
//     padded RW/exclusive stripe locks. Both sets pick their lock strategy
//     at construction.
//
//   - Element traits (package elem): sentinel bounds for ordered types and
//     default hashers (FNV-1a for integers, xxhash for strings/bytes).
//
//   - Metrics: Options.Metrics receives Insert/Remove/Contains/Resize/Retry/
//     Size signals. NoopMetrics is the default; package metrics/prom exports
//     them to Prometheus.
//
//   - Logging: Options.Logger takes a *zap.Logger (nil => no-op). Resizes are
//     logged at debug level.
//
// # Basic usage
//
//	s := striped.New[int](striped.Options[int]{ConcurrencyLevel: 4})
//	s.Insert(1)      // true
//	s.Insert(1)      // false, already present
//	s.Contains(1)    // true
//	s.Remove(1)      // true
//
//	l := optimistic.New[int](optimistic.Options[int]{})
//	defer l.Release()
//	l.Insert(5)
//	l.Insert(3)
//	l.Snapshot()     // [3 5]
//
// # Ordering and consistency
//
// Writers are serialized per stripe (striped) or per pair of adjacent nodes
// (optimistic); there is no global order across unrelated keys. Size is
// exact only at quiescence. No operation takes a context: every call runs
// to completion or blocks.
package concset
