package optimistic

import (
	"fmt"

	"github.com/IvanBrykalov/concset"
)

// Range calls fn for every live element in ascending order until fn returns
// false. It takes no locks; under concurrent mutation it may miss elements
// inserted or include elements removed during the walk.
func (s *Set[T]) Range(fn func(T) bool) {
	for n := s.head.next.Load(); n.kind != tail; n = n.next.Load() {
		if n.marked.Load() {
			continue
		}
		if !fn(n.val) {
			return
		}
	}
}

// Snapshot returns the live elements in ascending order (see Range).
func (s *Set[T]) Snapshot() []T {
	out := make([]T, 0, max(s.Size(), 0))
	s.Range(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Check verifies the list's structural invariants: head and tail carry the
// configured bounds, element values strictly increase between them and lie
// within the bounds, no reachable node is tombstoned and the number of
// reachable elements equals Size(). Only meaningful at quiescence.
func (s *Set[T]) Check() error {
	if s.head.kind != head || s.head.val != s.bounds.Min() {
		return fmt.Errorf("%w: bad head sentinel %v", concset.ErrCorrupted, s.head.val)
	}

	count := 0
	prev := s.head
	for n := s.head.next.Load(); ; n = n.next.Load() {
		if n == nil {
			return fmt.Errorf("%w: list ends without a tail after %v", concset.ErrCorrupted, prev.val)
		}
		if n.kind == tail {
			if n.val != s.bounds.Max() {
				return fmt.Errorf("%w: bad tail sentinel %v", concset.ErrCorrupted, n.val)
			}
			break
		}
		if n.kind != interior {
			return fmt.Errorf("%w: sentinel inside the list", concset.ErrCorrupted)
		}
		if n.marked.Load() {
			return fmt.Errorf("%w: removed node %v still reachable", concset.ErrCorrupted, n.val)
		}
		if prev.kind == interior && !(prev.val < n.val) {
			return fmt.Errorf("%w: %v is not < %v", concset.ErrCorrupted, prev.val, n.val)
		}
		if n.val < s.bounds.Min() || n.val > s.bounds.Max() {
			return fmt.Errorf("%w: %v outside bounds", concset.ErrCorrupted, n.val)
		}
		count++
		prev = n
	}

	if size := s.Size(); count != size {
		return fmt.Errorf("%w: %d reachable elements, size counter %d", concset.ErrCorrupted, count, size)
	}
	return nil
}
