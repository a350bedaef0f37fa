// Package arrayq is the sorted-slice strategy. Values are kept in reverse
// order so the minimum sits at the end and Dequeue is a pop.
//
// Queue is O(n) because of the shift, but for small queues the contiguous
// copy beats pointer-chasing heaps.
package arrayq

import (
	"slices"
	"sort"

	"github.com/codewanderer42820/pqueue/compare"
)

// Queue is a reverse-sorted slice ordered by a compare.Func. cmp must be
// non-nil.
type Queue[T any] struct {
	cmp  compare.Func[T]
	data []T // data[i] >= data[i+1]
}

// New builds a queue, inserting initial values one at a time.
func New[T any](cmp compare.Func[T], initial ...T) *Queue[T] {
	q := &Queue[T]{cmp: cmp, data: make([]T, 0, len(initial))}
	for _, v := range initial {
		q.Queue(v)
	}
	return q
}

// Queue inserts v after every value that sorts at or after it, so among
// equal values the newest leaves first.
func (q *Queue[T]) Queue(v T) {
	pos := sort.Search(len(q.data), func(i int) bool {
		return q.cmp(q.data[i], v) < 0
	})
	q.data = slices.Insert(q.data, pos, v)
}

// Dequeue removes and returns the minimum. ok is false when empty.
func (q *Queue[T]) Dequeue() (v T, ok bool) {
	n := len(q.data) - 1
	if n < 0 {
		return v, false
	}
	v = q.data[n]
	var zero T
	q.data[n] = zero
	q.data = q.data[:n]
	return v, true
}

// Peek returns the minimum without removing it. ok is false when empty.
func (q *Queue[T]) Peek() (v T, ok bool) {
	if len(q.data) == 0 {
		return v, false
	}
	return q.data[len(q.data)-1], true
}

func (q *Queue[T]) Clear() {
	clear(q.data)
	q.data = q.data[:0]
}

func (q *Queue[T]) Len() int    { return len(q.data) }
func (q *Queue[T]) Empty() bool { return len(q.data) == 0 }
