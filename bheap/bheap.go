// Package bheap implements a page-local binary heap.
//
// Heap is a binary min-heap whose slots are laid out so that a subtree stays
// inside one fixed-size page for as long as possible (Poul-Henning Kamp's
// B-Heap, "algo 3"). Sifting touches O(log n / log pageSize) pages instead of
// O(log n), which pays off once the heap outgrows the CPU caches.
//
// Architecture overview:
//   - Arena of pages: [][]T, every page exactly pageSize slots
//   - 1-based flattened index space, page = i >> shift, slot = i & mask
//   - Pages appended lazily the first time an index lands past the arena
//   - Parent/child links computed by geometry, never stored
//
// Safety model:
//   - Not safe for concurrent use; callers serialize access
//   - Dequeue/Peek on an empty heap report ok=false instead of panicking
package bheap

import (
	"errors"

	"github.com/codewanderer42820/pqueue/compare"
	"github.com/codewanderer42820/pqueue/constants"
)

var (
	ErrPageSize     = errors.New("bheap: page size must be a power of two in [4, 1<<24]")
	ErrNoComparator = errors.New("bheap: comparator is required")
)

// Heap is a page-aware binary min-heap ordered by a compare.Func.
type Heap[T any] struct {
	cmp    compare.Func[T]
	geo    geometry
	pages  [][]T // arena; page p covers indexes [p<<shift, (p+1)<<shift)
	length int   // live elements, occupying indexes [1, length]
}

// New builds a heap with the given page size (0 selects
// constants.DefaultPageSize) and queues initial one value at a time.
// Nothing is allocated when validation fails.
func New[T any](cmp compare.Func[T], pageSize int, initial ...T) (*Heap[T], error) {
	if cmp == nil {
		return nil, ErrNoComparator
	}
	if pageSize == 0 {
		pageSize = constants.DefaultPageSize
	}
	geo, err := newGeometry(pageSize)
	if err != nil {
		return nil, err
	}
	h := &Heap[T]{cmp: cmp, geo: geo}
	for _, v := range initial {
		h.Queue(v)
	}
	return h, nil
}

// ============================================================================
// ARENA ACCESS
// ============================================================================

// get reads a slot that is known to be allocated.
func (h *Heap[T]) get(i int) T {
	return h.pages[i>>h.geo.shift][i&h.geo.mask]
}

// set writes slot i, appending zeroed pages until i's page exists. This is
// the only allocation path.
func (h *Heap[T]) set(i int, v T) {
	p := i >> h.geo.shift
	for p >= len(h.pages) {
		h.pages = append(h.pages, make([]T, h.geo.size))
	}
	h.pages[p][i&h.geo.mask] = v
}

// ============================================================================
// QUEUE OPERATIONS
// ============================================================================

// Queue inserts v.
func (h *Heap[T]) Queue(v T) {
	h.length++
	h.set(h.length, v)
	h.siftUp(h.length, v)
}

// Dequeue removes and returns the minimum. ok is false on an empty heap.
func (h *Heap[T]) Dequeue() (v T, ok bool) {
	if h.length == 0 {
		return v, false
	}
	v = h.get(1)
	last := h.get(h.length)

	var zero T
	h.set(h.length, zero) // drop the reference held by the vacated slot
	h.length--

	if h.length > 0 {
		h.set(1, last)
		h.siftDown(1, last)
	}
	return v, true
}

// Peek returns the minimum without removing it. ok is false on an empty heap.
func (h *Heap[T]) Peek() (v T, ok bool) {
	if h.length == 0 {
		return v, false
	}
	return h.get(1), true
}

// Clear empties the heap and releases every page.
func (h *Heap[T]) Clear() {
	h.length = 0
	h.pages = nil
}

func (h *Heap[T]) Len() int      { return h.length }
func (h *Heap[T]) Empty() bool   { return h.length == 0 }
func (h *Heap[T]) PageSize() int { return h.geo.size }

// Pages reports how many pages the arena currently holds.
func (h *Heap[T]) Pages() int { return len(h.pages) }

// ============================================================================
// SIFTING
// ============================================================================

// siftUp moves v, sitting at index i, toward the root. Ancestors are shifted
// down into the hole and v is written once at its final position.
func (h *Heap[T]) siftUp(i int, v T) {
	for i > 1 {
		p := h.geo.parent(i)
		pv := h.get(p)
		if h.cmp(pv, v) <= 0 {
			break
		}
		h.set(i, pv)
		i = p
	}
	h.set(i, v)
}

// siftDown moves v, sitting at index i, toward the leaves. Where two
// children are live the smaller one is promoted, ties going to the first.
func (h *Heap[T]) siftDown(i int, v T) {
	for i < h.length {
		c1, c2 := h.geo.children(i)
		if c1 > h.length {
			break
		}
		c, cv := c1, h.get(c1)
		if c2 != c1 && c2 <= h.length {
			if v2 := h.get(c2); h.cmp(v2, cv) < 0 {
				c, cv = c2, v2
			}
		}
		if h.cmp(cv, v) >= 0 {
			break
		}
		h.set(i, cv)
		i = c
	}
	h.set(i, v)
}
