package elem

import "github.com/IvanBrykalov/concset/internal/util"

// Hasher maps an element to a 64-bit hash. It must be deterministic and
// pure: equal elements always hash equally.
type Hasher[T any] func(T) uint64

// FNV returns the FNV-1a hasher (fast for small fixed-size keys).
func FNV[T comparable]() Hasher[T] { return util.Fnv64a[T] }

// XXHash returns the xxhash hasher (fast for strings and byte arrays).
func XXHash[T comparable]() Hasher[T] { return util.XXHash64[T] }

// DefaultHasher picks xxhash for string and byte-array elements and FNV-1a
// for everything else. Both panic on first use with unsupported types;
// supply a custom Hasher for structs.
func DefaultHasher[T comparable]() Hasher[T] {
	var zero T
	switch any(zero).(type) {
	case string, [16]byte, [32]byte, [64]byte:
		return XXHash[T]()
	default:
		return FNV[T]()
	}
}
