package singleflight

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Many concurrent callers for the same key must share one execution.
func TestGroup_CoalescesSameKey(t *testing.T) {
	t.Parallel()

	var g Group[int, int]
	var calls atomic.Int64
	release := make(chan struct{})

	const N = 32
	var wg sync.WaitGroup
	results := make([]int, N)
	wg.Add(N)
	for i := 0; i < N; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], _ = g.Do(1, func() int {
				calls.Add(1)
				<-release
				return 42
			})
		}(i)
	}

	// Give followers a chance to join the in-flight call.
	deadline := time.Now().Add(time.Second)
	for g.InFlight() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got < 1 || got > N {
		t.Fatalf("unexpected call count %d", got)
	}
	for i, r := range results {
		if r != 42 {
			t.Fatalf("result[%d] = %d, want 42", i, r)
		}
	}
	if g.InFlight() != 0 {
		t.Fatal("in-flight marker must be cleared")
	}
}

// Distinct keys never share a result.
func TestGroup_DistinctKeys(t *testing.T) {
	t.Parallel()

	var g Group[string, string]
	a, sharedA := g.Do("a", func() string { return "A" })
	b, sharedB := g.Do("b", func() string { return "B" })
	if a != "A" || b != "B" || sharedA || sharedB {
		t.Fatalf("got %q/%v %q/%v", a, sharedA, b, sharedB)
	}
}

// A panicking leader must not wedge later callers.
func TestGroup_PanicClearsMarker(t *testing.T) {
	t.Parallel()

	var g Group[int, int]
	func() {
		defer func() { _ = recover() }()
		g.Do(7, func() int { panic("boom") })
	}()

	v, shared := g.Do(7, func() int { return 1 })
	if v != 1 || shared {
		t.Fatalf("got %d shared=%v", v, shared)
	}
}
