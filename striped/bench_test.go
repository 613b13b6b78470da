package striped

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/IvanBrykalov/concset/lock"
)

// benchmarkMix exercises a read/write mix against a warm set.
// RunParallel spawns GOMAXPROCS goroutines; writes alternate Insert/Remove
// so the size stays roughly constant.
func benchmarkMix(b *testing.B, strategy lock.Strategy, readsPct int) {
	s := New[int](Options[int]{Locking: strategy})
	for i := 0; i < 50_000; i++ {
		s.Insert(i)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := i & keyMask
			switch p := r.Intn(100); {
			case p < readsPct:
				s.Contains(k)
			case p%2 == 0:
				s.Insert(k)
			default:
				s.Remove(k)
			}
			i++
		}
	})
}

func BenchmarkSet_RW_90r10w(b *testing.B)    { benchmarkMix(b, lock.ReadWrite, 90) }
func BenchmarkSet_RW_50r50w(b *testing.B)    { benchmarkMix(b, lock.ReadWrite, 50) }
func BenchmarkSet_Mutex_90r10w(b *testing.B) { benchmarkMix(b, lock.Mutex, 90) }
func BenchmarkSet_Mutex_50r50w(b *testing.B) { benchmarkMix(b, lock.Mutex, 50) }

// BenchmarkSet_GrowFromEmpty measures insert throughput including every
// stop-the-world resize on the way up.
func BenchmarkSet_GrowFromEmpty(b *testing.B) {
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		s := New[string](Options[string]{ConcurrencyLevel: 16})
		for i := 0; i < 10_000; i++ {
			s.Insert("k:" + strconv.Itoa(i))
		}
	}
}
