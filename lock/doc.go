// Package lock provides the mutual-exclusion primitives the sets are built
// on: an exchange-based SpinLock for very short critical sections (node
// pointer rewiring) and padded read-write / exclusive locks for stripes.
//
// Every type here satisfies sync.Locker, so callers and tests can swap a
// spin lock for a blocking mutex without code changes. None of them is
// reentrant.
package lock
