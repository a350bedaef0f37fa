// Package binheap is the classic slice-backed binary min-heap strategy:
// parent (i-1)/2, children 2i+1 and 2i+2.
package binheap

import "github.com/codewanderer42820/pqueue/compare"

// Heap is a binary min-heap ordered by a compare.Func. cmp must be non-nil.
type Heap[T any] struct {
	cmp  compare.Func[T]
	data []T
}

// New builds a heap, sifting initial values in one at a time.
func New[T any](cmp compare.Func[T], initial ...T) *Heap[T] {
	h := &Heap[T]{cmp: cmp, data: make([]T, 0, len(initial))}
	for _, v := range initial {
		h.Queue(v)
	}
	return h
}

func (h *Heap[T]) Queue(v T) {
	h.data = append(h.data, v)
	h.up(len(h.data) - 1)
}

// Dequeue removes and returns the minimum. ok is false on an empty heap.
func (h *Heap[T]) Dequeue() (v T, ok bool) {
	n := len(h.data) - 1
	if n < 0 {
		return v, false
	}
	v = h.data[0]
	h.data[0] = h.data[n]

	var zero T
	h.data[n] = zero
	h.data = h.data[:n]
	if n > 0 {
		h.down(0)
	}
	return v, true
}

// Peek returns the minimum without removing it. ok is false on an empty heap.
func (h *Heap[T]) Peek() (v T, ok bool) {
	if len(h.data) == 0 {
		return v, false
	}
	return h.data[0], true
}

func (h *Heap[T]) Clear() {
	clear(h.data)
	h.data = h.data[:0]
}

func (h *Heap[T]) Len() int    { return len(h.data) }
func (h *Heap[T]) Empty() bool { return len(h.data) == 0 }

func (h *Heap[T]) up(i int) {
	for i > 0 {
		p := (i - 1) >> 1
		if h.cmp(h.data[i], h.data[p]) >= 0 {
			break
		}
		h.data[i], h.data[p] = h.data[p], h.data[i]
		i = p
	}
}

func (h *Heap[T]) down(i int) {
	last := len(h.data) - 1
	for {
		least := i
		if l := 2*i + 1; l <= last && h.cmp(h.data[l], h.data[least]) < 0 {
			least = l
		}
		if r := 2*i + 2; r <= last && h.cmp(h.data[r], h.data[least]) < 0 {
			least = r
		}
		if least == i {
			return
		}
		h.data[i], h.data[least] = h.data[least], h.data[i]
		i = least
	}
}
