package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	id   int
	next *item
}

// Pointers handed out before chunk growth must still address the same
// objects afterwards.
func TestArena_PointerStability(t *testing.T) {
	t.Parallel()

	a := New[item](4)
	ptrs := make([]*item, 0, 50)
	for i := 0; i < 50; i++ {
		p := a.Alloc()
		require.Zero(t, *p, "Alloc must return a zero value")
		p.id = i
		ptrs = append(ptrs, p)
	}
	for i, p := range ptrs {
		require.Equal(t, i, p.id)
	}
	require.Equal(t, 50, a.Len())
	require.Equal(t, 13, a.Chunks()) // ceil(50/4)
}

func TestArena_DefaultChunkSize(t *testing.T) {
	t.Parallel()

	a := New[int](0)
	a.Alloc()
	require.Equal(t, 1, a.Chunks())
	require.Equal(t, DefaultChunkSize, a.chunkSize)
}

// Concurrent Alloc calls must never hand out the same slot twice.
func TestArena_ConcurrentAllocUnique(t *testing.T) {
	t.Parallel()

	a := New[item](16)
	const workers, per = 8, 500

	var mu sync.Mutex
	seen := make(map[*item]struct{}, workers*per)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			local := make([]*item, 0, per)
			for i := 0; i < per; i++ {
				local = append(local, a.Alloc())
			}
			mu.Lock()
			for _, p := range local {
				seen[p] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*per)
	require.Equal(t, workers*per, a.Len())
}

// Objects stay readable after Release; only further allocation is refused.
func TestArena_Release(t *testing.T) {
	t.Parallel()

	a := New[item](2)
	p := a.Alloc()
	p.id = 7
	a.Release()
	a.Release() // idempotent

	require.True(t, a.Released())
	require.Equal(t, 7, p.id)
	require.Equal(t, 0, a.Chunks())
	require.Panics(t, func() { a.Alloc() })
}
