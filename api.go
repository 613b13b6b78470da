package concset

// Set is the capability shared by every concurrent set in this module.
// All methods are safe for concurrent use by multiple goroutines.
//
// Logical failures (element already present on Insert, absent on Remove)
// are reported through the boolean result; callers must check it.
type Set[T any] interface {
	// Insert adds v and returns true, or returns false if v is already present.
	Insert(v T) bool

	// Remove deletes v and returns true, or returns false if v is absent.
	Remove(v T) bool

	// Contains reports whether v is present.
	Contains(v T) bool

	// Size returns the number of elements. It is exact only when no
	// mutation is in flight; concurrent reads are a best-effort snapshot.
	Size() int
}
