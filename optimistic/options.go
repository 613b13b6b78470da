package optimistic

import (
	"cmp"
	"fmt"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/concset"
	"github.com/IvanBrykalov/concset/elem"
)

// DefaultMaxRetries bounds the validate-and-retry loop of one operation.
// Reaching it means validation failed about a million times in a row, which
// only pathological contention (or a bug) produces.
const DefaultMaxRetries = 1 << 20

// NodeLock selects the per-node lock implementation.
type NodeLock int

const (
	// SpinLocks uses lock.SpinLock (default). Node critical sections are a
	// couple of pointer stores, which is what spin locks are for.
	SpinLocks NodeLock = iota
	// MutexLocks uses sync.Mutex, which parks waiters instead of spinning.
	MutexLocks
)

// String returns a stable name for the lock kind.
func (k NodeLock) String() string {
	switch k {
	case SpinLocks:
		return "spin"
	case MutexLocks:
		return "mutex"
	default:
		return "unknown"
	}
}

// ParseNodeLock maps a name produced by String back to a NodeLock.
func ParseNodeLock(name string) (NodeLock, bool) {
	switch name {
	case "spin", "":
		return SpinLocks, true
	case "mutex":
		return MutexLocks, true
	}
	return SpinLocks, false
}

// Options configures an optimistic set. Zero values are safe for integer
// and float element types; defaults are applied in New():
//   - nil Bounds      => elem.OrderedBounds (required for strings)
//   - MaxRetries <= 0 => DefaultMaxRetries
//   - ChunkSize <= 0  => arena.DefaultChunkSize
//   - nil Metrics     => concset.NoopMetrics
//   - nil Logger      => zap.NewNop()
type Options[T cmp.Ordered] struct {
	// Bounds supplies the sentinel values stored in the head and tail
	// nodes. Elements outside [Min, Max] are rejected by Insert.
	Bounds elem.Bounds[T]

	// NodeLock selects spin locks (default) or mutexes for nodes.
	NodeLock NodeLock

	// MaxRetries is the per-operation validation budget. Exhausting it
	// panics with an error wrapping concset.ErrRetryBudgetExhausted.
	MaxRetries int

	// ChunkSize is the number of nodes per arena chunk.
	ChunkSize int

	// Observability
	Metrics concset.Metrics
	Logger  *zap.Logger
}

// Validate reports option values New would reject.
func (o Options[T]) Validate() error {
	switch o.NodeLock {
	case SpinLocks, MutexLocks:
	default:
		return fmt.Errorf("%w: unknown node lock %d", concset.ErrInvalidOptions, o.NodeLock)
	}
	b := o.Bounds
	if b == nil {
		r, ok := elem.OrderedBounds[T]()
		if !ok {
			var zero T
			return fmt.Errorf("%w: element type %T has no natural bounds; set Options.Bounds", concset.ErrInvalidOptions, zero)
		}
		b = r
	}
	if !(b.Min() < b.Max()) {
		return fmt.Errorf("%w: bounds [%v, %v] are empty", concset.ErrInvalidOptions, b.Min(), b.Max())
	}
	return nil
}

// withDefaults fills zero values. It assumes Validate passed.
func (o Options[T]) withDefaults() Options[T] {
	if o.Bounds == nil {
		o.Bounds, _ = elem.OrderedBounds[T]()
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.Metrics == nil {
		o.Metrics = concset.NoopMetrics{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
