package lock

import (
	"sync"

	"github.com/IvanBrykalov/concset/internal/util"
)

// RWLocker is a read-write mutual-exclusion lock.
// *sync.RWMutex satisfies it.
type RWLocker interface {
	sync.Locker
	RLock()
	RUnlock()
}

// Exclusive adapts a plain mutex to RWLocker: readers take the exclusive
// lock too, so at most one goroutine (reader or writer) is inside.
type Exclusive struct {
	mu sync.Mutex
}

func (e *Exclusive) Lock()    { e.mu.Lock() }
func (e *Exclusive) Unlock()  { e.mu.Unlock() }
func (e *Exclusive) RLock()   { e.mu.Lock() }
func (e *Exclusive) RUnlock() { e.mu.Unlock() }

// PaddedRWMutex is a sync.RWMutex on its own cache line.
// A blocked Lock call keeps new readers out, so writers are not starved.
type PaddedRWMutex struct {
	sync.RWMutex
	_ util.CacheLinePad
}

// PaddedExclusive is an Exclusive on its own cache line.
type PaddedExclusive struct {
	Exclusive
	_ util.CacheLinePad
}

// Strategy selects the lock type guarding each stripe.
type Strategy int

const (
	// ReadWrite lets readers of a stripe proceed concurrently (default).
	ReadWrite Strategy = iota
	// Mutex serializes readers and writers of a stripe alike.
	Mutex
)

// String returns a stable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case ReadWrite:
		return "rwmutex"
	case Mutex:
		return "mutex"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a name produced by String back to a Strategy.
func ParseStrategy(name string) (Strategy, bool) {
	switch name {
	case "rwmutex", "rw", "":
		return ReadWrite, true
	case "mutex":
		return Mutex, true
	}
	return ReadWrite, false
}

// NewStripes allocates n padded stripe locks of the given strategy.
func NewStripes(s Strategy, n int) []RWLocker {
	out := make([]RWLocker, n)
	switch s {
	case Mutex:
		ls := make([]PaddedExclusive, n)
		for i := range ls {
			out[i] = &ls[i]
		}
	default:
		ls := make([]PaddedRWMutex, n)
		for i := range ls {
			out[i] = &ls[i]
		}
	}
	return out
}

var (
	_ RWLocker = (*sync.RWMutex)(nil)
	_ RWLocker = (*Exclusive)(nil)
	_ RWLocker = (*PaddedRWMutex)(nil)
	_ RWLocker = (*PaddedExclusive)(nil)
)
