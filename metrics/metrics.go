// Package metrics exposes Prometheus instrumentation for queue strategies.
//
// Instrument wraps any strategy.Strategy and counts operations, tracks the
// live length and, for paged strategies, the number of allocated pages.
// Counters are resolved once per wrapped queue so the per-operation cost is
// a few atomic adds.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codewanderer42820/pqueue/strategy"
)

const namespace = "pqueue"

// Metrics holds the collectors shared by every instrumented queue. Queues
// are told apart by the "queue" label.
type Metrics struct {
	ops    *prometheus.CounterVec
	misses *prometheus.CounterVec
	length *prometheus.GaugeVec
	pages  *prometheus.GaugeVec
}

// New registers the collectors with registerer. A nil registerer creates
// unregistered collectors, which is handy in tests.
func New(registerer prometheus.Registerer) *Metrics {
	f := promauto.With(registerer)
	return &Metrics{
		ops: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Queue operations by kind.",
		}, []string{"queue", "op"}),
		misses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_reads_total",
			Help:      "Dequeue or peek calls that found the strategy empty.",
		}, []string{"queue", "op"}),
		length: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "length",
			Help:      "Live elements held by the queue.",
		}, []string{"queue"}),
		pages: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pages",
			Help:      "Pages allocated by paged strategies.",
		}, []string{"queue"}),
	}
}

// pager is implemented by strategies with a paged arena (bheap).
type pager interface {
	Pages() int
}

type instrumented[T any] struct {
	strategy.Strategy[T]
	pager pager // nil when the strategy is not paged

	queued, dequeued, peeked, cleared prometheus.Counter
	emptyDequeue, emptyPeek           prometheus.Counter
	length, pages                     prometheus.Gauge
}

// Instrument wraps s so every operation is recorded under the given queue
// name. The wrapper implements strategy.Strategy and is as safe for
// concurrent use as s itself.
func Instrument[T any](s strategy.Strategy[T], m *Metrics, name string) strategy.Strategy[T] {
	in := &instrumented[T]{
		Strategy:     s,
		queued:       m.ops.WithLabelValues(name, "queue"),
		dequeued:     m.ops.WithLabelValues(name, "dequeue"),
		peeked:       m.ops.WithLabelValues(name, "peek"),
		cleared:      m.ops.WithLabelValues(name, "clear"),
		emptyDequeue: m.misses.WithLabelValues(name, "dequeue"),
		emptyPeek:    m.misses.WithLabelValues(name, "peek"),
		length:       m.length.WithLabelValues(name),
		pages:        m.pages.WithLabelValues(name),
	}
	if p, ok := s.(pager); ok {
		in.pager = p
	}
	in.observe()
	return in
}

func (in *instrumented[T]) observe() {
	in.length.Set(float64(in.Strategy.Len()))
	if in.pager != nil {
		in.pages.Set(float64(in.pager.Pages()))
	}
}

func (in *instrumented[T]) Queue(v T) {
	in.Strategy.Queue(v)
	in.queued.Inc()
	in.observe()
}

func (in *instrumented[T]) Dequeue() (T, bool) {
	v, ok := in.Strategy.Dequeue()
	in.dequeued.Inc()
	if !ok {
		in.emptyDequeue.Inc()
	}
	in.observe()
	return v, ok
}

func (in *instrumented[T]) Peek() (T, bool) {
	v, ok := in.Strategy.Peek()
	in.peeked.Inc()
	if !ok {
		in.emptyPeek.Inc()
	}
	return v, ok
}

func (in *instrumented[T]) Clear() {
	in.Strategy.Clear()
	in.cleared.Inc()
	in.observe()
}
