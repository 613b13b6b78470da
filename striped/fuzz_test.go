package striped

import (
	"strings"
	"testing"
)

// Fuzz Insert/Contains/Remove semantics under arbitrary string inputs.
// Lengths are capped to keep memory bounded (the invariants don't depend
// on length).
func FuzzSet_InsertContainsRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "b")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, a, b string) {
		const limit = 1 << 12
		if len(a) > limit {
			a = a[:limit]
		}
		if len(b) > limit {
			b = b[:limit]
		}

		s := New[string](Options[string]{ConcurrencyLevel: 2})
		if !s.Insert(a) || s.Insert(a) {
			t.Fatalf("Insert(%q) twice must be true then false", a)
		}
		if got := s.Insert(b); got != (a != b) {
			t.Fatalf("Insert(%q) = %v with a=%q", b, got, a)
		}
		if !s.Contains(a) || !s.Contains(b) {
			t.Fatal("both must be present")
		}
		if !s.Remove(a) || s.Contains(a) {
			t.Fatalf("Remove(%q) must delete it", a)
		}
		if s.Contains(b) != (a != b) {
			t.Fatal("removing a must not affect a distinct b")
		}
		if err := s.Check(); err != nil {
			t.Fatal(err)
		}
	})
}
