package concset

// Metrics exposes set-level observability hooks.
// Implementations must be safe for concurrent use; hooks are invoked on the
// hot path (some while a lock is held), so keep them cheap.
type Metrics interface {
	// Insert records an Insert call and whether it added the element.
	Insert(added bool)
	// Remove records a Remove call and whether it deleted the element.
	Remove(removed bool)
	// Contains records a lookup and whether it found the element.
	Contains(found bool)
	// Resize records a table growth from one bucket count to another.
	Resize(from, to int)
	// Retry records a failed optimistic validation.
	Retry()
	// Size reports the element count after a successful mutation.
	Size(n int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is used by default when no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Insert(bool)     {}
func (NoopMetrics) Remove(bool)     {}
func (NoopMetrics) Contains(bool)   {}
func (NoopMetrics) Resize(int, int) {}
func (NoopMetrics) Retry()          {}
func (NoopMetrics) Size(int)        {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
