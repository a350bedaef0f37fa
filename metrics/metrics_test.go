package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewanderer42820/pqueue/compare"
	"github.com/codewanderer42820/pqueue/strategy"
)

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	s, err := strategy.New(strategy.BHeap, compare.Ascending[int], 4, []int{7})
	require.NoError(t, err)
	q := Instrument(s, m, "jobs")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.length.WithLabelValues("jobs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pages.WithLabelValues("jobs")))

	for i := range 10 {
		q.Queue(i)
	}
	v, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 0, v)
	for range 11 {
		_, ok := q.Dequeue()
		require.True(t, ok)
	}
	_, ok = q.Dequeue()
	assert.False(t, ok)
	_, ok = q.Peek()
	assert.False(t, ok)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.ops.WithLabelValues("jobs", "queue")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.ops.WithLabelValues("jobs", "dequeue")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ops.WithLabelValues("jobs", "peek")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.misses.WithLabelValues("jobs", "dequeue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.misses.WithLabelValues("jobs", "peek")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.length.WithLabelValues("jobs")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.pages.WithLabelValues("jobs")))

	q.Clear()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.pages.WithLabelValues("jobs")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ops.WithLabelValues("jobs", "clear")))

	n, err := testutil.GatherAndCount(reg, "pqueue_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestInstrumentUnpaged(t *testing.T) {
	m := New(nil)
	s, err := strategy.New(strategy.Array, compare.Ascending[string], 0, nil)
	require.NoError(t, err)
	q := Instrument(s, m, "names")
	q.Queue("b")
	q.Queue("a")
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(m.length.WithLabelValues("names")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.pages.WithLabelValues("names")))
}
