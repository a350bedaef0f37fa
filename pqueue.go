// Package pqueue is a min-first priority queue over interchangeable storage
// strategies.
//
// The strategy is picked once at construction (binary heap by default, a
// sorted array, or a page-local B-Heap for large queues) and every
// operation is forwarded to it. The queue tracks its own length and is the
// one place that turns an empty Dequeue or Peek into ErrEmptyQueue.
//
// A PriorityQueue is not safe for concurrent use.
package pqueue

import (
	"errors"

	"golang.org/x/exp/constraints"

	"github.com/codewanderer42820/pqueue/compare"
	"github.com/codewanderer42820/pqueue/metrics"
	"github.com/codewanderer42820/pqueue/strategy"
)

var (
	ErrEmptyQueue   = errors.New("pqueue: empty queue")
	ErrNoComparator = errors.New("pqueue: comparator is required")
)

// Options configures a PriorityQueue. The zero value is a binary heap.
type Options[T any] struct {
	// Comparator orders values, smallest first. New defaults it to
	// compare.Ascending; NewFunc requires it.
	Comparator compare.Func[T]

	// InitialValues are queued one at a time before the queue is returned.
	InitialValues []T

	// Strategy selects the backing store.
	Strategy strategy.Kind

	// PageSize is the B-Heap page size in slots: a power of two >= 4, or 0
	// for the default. Other strategies ignore it.
	PageSize int

	// Metrics, when set, instruments the strategy under Name (which
	// defaults to the strategy name).
	Metrics *metrics.Metrics
	Name    string
}

// PriorityQueue hands out values in comparator order, smallest first.
type PriorityQueue[T any] struct {
	impl   strategy.Strategy[T]
	length int
}

// New builds a queue over an ordered type, defaulting the comparator to
// ascending order.
func New[T constraints.Ordered](opts Options[T]) (*PriorityQueue[T], error) {
	if opts.Comparator == nil {
		opts.Comparator = compare.Ascending[T]
	}
	return NewFunc(opts)
}

// NewFunc builds a queue over any type. opts.Comparator must be set.
func NewFunc[T any](opts Options[T]) (*PriorityQueue[T], error) {
	if opts.Comparator == nil {
		return nil, ErrNoComparator
	}
	impl, err := strategy.New(opts.Strategy, opts.Comparator, opts.PageSize, opts.InitialValues)
	if err != nil {
		return nil, err
	}
	if opts.Metrics != nil {
		name := opts.Name
		if name == "" {
			name = opts.Strategy.String()
		}
		impl = metrics.Instrument(impl, opts.Metrics, name)
	}
	return &PriorityQueue[T]{impl: impl, length: len(opts.InitialValues)}, nil
}

// Queue inserts v.
func (q *PriorityQueue[T]) Queue(v T) {
	q.length++
	q.impl.Queue(v)
}

// Dequeue removes and returns the smallest value. On an empty queue it
// returns ErrEmptyQueue and leaves the queue untouched.
func (q *PriorityQueue[T]) Dequeue() (T, error) {
	if q.length == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	q.length--
	v, _ := q.impl.Dequeue()
	return v, nil
}

// Peek returns the smallest value without removing it, or ErrEmptyQueue.
func (q *PriorityQueue[T]) Peek() (T, error) {
	if q.length == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	v, _ := q.impl.Peek()
	return v, nil
}

// Clear drops every value.
func (q *PriorityQueue[T]) Clear() {
	q.length = 0
	q.impl.Clear()
}

// Len returns the number of queued values.
func (q *PriorityQueue[T]) Len() int { return q.length }

func (q *PriorityQueue[T]) Empty() bool { return q.length == 0 }
