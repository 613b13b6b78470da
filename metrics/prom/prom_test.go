package prom

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/IvanBrykalov/concset/optimistic"
	"github.com/IvanBrykalov/concset/striped"
)

func TestAdapter_StripedSet(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "concset", "test", prometheus.Labels{"set": "striped"})

	s := striped.New[int](striped.Options[int]{ConcurrencyLevel: 1, Metrics: m})
	for i := 0; i < 10; i++ {
		s.Insert(i)
	}
	s.Insert(3)
	s.Contains(3)
	s.Contains(99)
	s.Remove(3)

	if got := testutil.ToFloat64(m.inserts.WithLabelValues("true")); got != 10 {
		t.Fatalf("inserts{added=true} = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.inserts.WithLabelValues("false")); got != 1 {
		t.Fatalf("inserts{added=false} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.lookups.WithLabelValues("false")); got != 1 {
		t.Fatalf("lookups{found=false} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.size); got != 9 {
		t.Fatalf("size = %v, want 9", got)
	}
	if got := testutil.ToFloat64(m.resizes); got != float64(s.Stats().Resizes) {
		t.Fatalf("resizes = %v, stats say %d", got, s.Stats().Resizes)
	}
	if got := testutil.ToFloat64(m.capacity); got != float64(s.Capacity()) {
		t.Fatalf("capacity = %v, want %d", got, s.Capacity())
	}
}

func TestAdapter_OptimisticSet(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "concset", "test", nil)

	s := optimistic.New[int](optimistic.Options[int]{Metrics: m})
	defer s.Release()
	s.Insert(1)
	s.Insert(2)
	s.Remove(1)
	s.Remove(1)

	if got := testutil.ToFloat64(m.removes.WithLabelValues("true")); got != 1 {
		t.Fatalf("removes{removed=true} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.removes.WithLabelValues("false")); got != 1 {
		t.Fatalf("removes{removed=false} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.size); got != 1 {
		t.Fatalf("size = %v, want 1", got)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n == 0 {
		t.Fatalf("gather: n=%d err=%v", n, err)
	}
}
