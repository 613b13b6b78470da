// Package striped implements a lock-striped chained hash set.
//
// The table is an array of singly linked buckets. A fixed number of stripe
// locks (Options.ConcurrencyLevel) guard it: bucket b belongs to stripe
// b mod stripes, and because the bucket count is always stripes × growth^k
// an element's stripe never changes when the table grows.
//
// Insert and Remove take one stripe's write lock, Contains its read lock
// (or the exclusive lock with lock.Mutex). When an Insert finds the load
// factor exceeded it releases its stripe, write-locks every stripe in
// ascending order, re-checks the load factor and rehashes into a table
// GrowthFactor times larger. Resizing stops the world: no operation on any
// stripe proceeds until it finishes. Writers that trip the threshold at the
// same capacity share a single resize.
//
//	s := striped.New[string](striped.Options[string]{
//	    ConcurrencyLevel: 16,
//	    LoadFactor:       1.25,
//	})
//	s.Insert("a")
//	s.Contains("a") // true
package striped
