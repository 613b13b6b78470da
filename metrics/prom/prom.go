// Package prom exports concset.Metrics to Prometheus.
package prom

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/concset"
)

// Adapter implements concset.Metrics with Prometheus counters and gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	inserts  *prometheus.CounterVec
	removes  *prometheus.CounterVec
	lookups  *prometheus.CounterVec
	resizes  prometheus.Counter
	capacity prometheus.Gauge
	retries  prometheus.Counter
	size     prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil),
//     e.g. {"set": "striped"} when several sets share a registry
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counterVec := func(name, help, label string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		}, []string{label})
	}
	a := &Adapter{
		inserts: counterVec("inserts_total", "Insert calls by outcome", "added"),
		removes: counterVec("removes_total", "Remove calls by outcome", "removed"),
		lookups: counterVec("lookups_total", "Contains calls by outcome", "found"),
		resizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "resizes_total",
			Help:        "Table growths (striped sets)",
			ConstLabels: constLabels,
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "capacity_buckets",
			Help:        "Bucket count after the last resize (striped sets)",
			ConstLabels: constLabels,
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "validation_retries_total",
			Help:        "Failed optimistic validations (optimistic sets)",
			ConstLabels: constLabels,
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_elements",
			Help:        "Number of elements after the last mutation",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.inserts, a.removes, a.lookups, a.resizes, a.capacity, a.retries, a.size)
	return a
}

// Insert counts an Insert by outcome.
func (a *Adapter) Insert(added bool) { a.inserts.WithLabelValues(strconv.FormatBool(added)).Inc() }

// Remove counts a Remove by outcome.
func (a *Adapter) Remove(removed bool) { a.removes.WithLabelValues(strconv.FormatBool(removed)).Inc() }

// Contains counts a lookup by outcome.
func (a *Adapter) Contains(found bool) { a.lookups.WithLabelValues(strconv.FormatBool(found)).Inc() }

// Resize counts a growth and records the new bucket count.
func (a *Adapter) Resize(_, to int) {
	a.resizes.Inc()
	a.capacity.Set(float64(to))
}

// Retry counts a failed validation.
func (a *Adapter) Retry() { a.retries.Inc() }

// Size updates the element gauge.
func (a *Adapter) Size(n int) { a.size.Set(float64(n)) }

// Compile-time check: ensure Adapter implements concset.Metrics.
var _ concset.Metrics = (*Adapter)(nil)
