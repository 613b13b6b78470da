package lock

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// spinsBeforeYield bounds busy-waiting before the goroutine yields its P.
// Without the yield a spinner could burn a whole time slice while the owner
// waits to be scheduled on the same P.
const spinsBeforeYield = 64

// SpinLock is an exchange-based busy-wait mutex. The zero value is unlocked.
//
// Hold it only for a handful of instructions: it must never be held across
// a channel operation, syscall, allocation-heavy work or another blocking
// lock acquisition.
type SpinLock struct {
	held atomic.Bool
}

// Lock spins until the lock is acquired.
func (l *SpinLock) Lock() {
	spins := 0
	for l.held.Swap(true) {
		spins++
		if spins%spinsBeforeYield == 0 {
			runtime.Gosched()
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return !l.held.Swap(true)
}

// Unlock releases the lock. Unlocking an unlocked SpinLock panics.
func (l *SpinLock) Unlock() {
	if !l.held.Swap(false) {
		panic("lock: unlock of unlocked SpinLock")
	}
}

var _ sync.Locker = (*SpinLock)(nil)
