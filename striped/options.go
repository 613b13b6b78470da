package striped

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/IvanBrykalov/concset"
	"github.com/IvanBrykalov/concset/elem"
	"github.com/IvanBrykalov/concset/internal/util"
	"github.com/IvanBrykalov/concset/lock"
)

const (
	// DefaultGrowthFactor multiplies the bucket count on every resize.
	DefaultGrowthFactor = 2
	// DefaultLoadFactor is the elements-per-bucket ratio that triggers growth.
	DefaultLoadFactor = 1.25
)

// Options configures a striped set. Zero values are safe; defaults are
// applied in New():
//   - ConcurrencyLevel <= 0 => auto (≈ 2*GOMAXPROCS, power of two, max 256)
//   - InitialCapacity <= 0  => ConcurrencyLevel
//   - GrowthFactor <= 0     => 2
//   - LoadFactor <= 0       => 1.25
//   - nil Hasher            => elem.DefaultHasher
//   - nil Metrics           => concset.NoopMetrics
//   - nil Logger            => zap.NewNop()
type Options[T comparable] struct {
	// ConcurrencyLevel is the number of stripe locks. It is fixed for the
	// lifetime of the set; only the bucket table grows.
	ConcurrencyLevel int

	// InitialCapacity is the starting number of buckets. It is rounded up to
	// a multiple of ConcurrencyLevel so every stripe covers whole buckets.
	InitialCapacity int

	// GrowthFactor multiplies the bucket count on resize. Must be >= 2.
	GrowthFactor int

	// LoadFactor is the maximum Size()/Capacity() ratio; an Insert that
	// observes a higher ratio grows the table first.
	LoadFactor float64

	// Hasher must be deterministic and pure.
	Hasher elem.Hasher[T]

	// Locking selects the per-stripe lock: lock.ReadWrite (Contains calls on
	// one stripe run in parallel) or lock.Mutex.
	Locking lock.Strategy

	// Observability
	Metrics concset.Metrics
	Logger  *zap.Logger
}

// Validate reports option values New would reject. Zero values are valid.
func (o Options[T]) Validate() error {
	if o.GrowthFactor == 1 {
		return fmt.Errorf("%w: growth factor must be >= 2, got %d", concset.ErrInvalidOptions, o.GrowthFactor)
	}
	if math.IsNaN(o.LoadFactor) || math.IsInf(o.LoadFactor, 0) {
		return fmt.Errorf("%w: load factor must be finite, got %v", concset.ErrInvalidOptions, o.LoadFactor)
	}
	if o.ConcurrencyLevel > 1<<16 {
		return fmt.Errorf("%w: concurrency level %d is too large", concset.ErrInvalidOptions, o.ConcurrencyLevel)
	}
	switch o.Locking {
	case lock.ReadWrite, lock.Mutex:
	default:
		return fmt.Errorf("%w: unknown locking strategy %d", concset.ErrInvalidOptions, o.Locking)
	}
	return nil
}

// withDefaults fills zero values. It assumes Validate passed.
func (o Options[T]) withDefaults() Options[T] {
	if o.ConcurrencyLevel <= 0 {
		o.ConcurrencyLevel = util.ReasonableStripeCount()
	}
	o.InitialCapacity = util.RoundUpMultiple(o.InitialCapacity, o.ConcurrencyLevel)
	if o.GrowthFactor <= 0 {
		o.GrowthFactor = DefaultGrowthFactor
	}
	if o.LoadFactor <= 0 {
		o.LoadFactor = DefaultLoadFactor
	}
	if o.Hasher == nil {
		o.Hasher = elem.DefaultHasher[T]()
	}
	if o.Metrics == nil {
		o.Metrics = concset.NoopMetrics{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
