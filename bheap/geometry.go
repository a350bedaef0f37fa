package bheap

import (
	"math/bits"

	"github.com/codewanderer42820/pqueue/constants"
)

// ============================================================================
// PAGE GEOMETRY
// ============================================================================
//
// The heap lives in a flattened 1-based index space cut into pages of
// `size` slots:
//
//	page(i) = i >> shift
//	slot(i) = i & mask
//
// Page 0 holds the classic top of the tree: slot 0 is unused, slot 1 is the
// root, and slot s has children 2s and 2s+1 for as long as they fit.
//
// Every later page hosts a small subtree of its own. Slots 0 and 1 are entry
// points hanging off a node in the last row of some earlier page; each has a
// single child (slot 2 and slot 3 respectively). From slot 2 onward the page
// is a regular binary tree again (children of s are 2s and 2s+1 inside the
// page) until its last row, whose children open the first two slots of a
// fresh page.
//
// Keeping a subtree inside one page means a sift touches a handful of pages
// instead of one page per level.

// geometry holds the page-derived constants for one heap.
type geometry struct {
	size  int  // slots per page, power of two in [MinPageSize, MaxPageSize]
	shift uint // log2(size)
	mask  int  // size - 1
}

// newGeometry validates pageSize and derives shift and mask from it.
func newGeometry(pageSize int) (geometry, error) {
	if pageSize < constants.MinPageSize || pageSize > constants.MaxPageSize ||
		pageSize&(pageSize-1) != 0 {
		return geometry{}, ErrPageSize
	}
	return geometry{
		size:  pageSize,
		shift: uint(bits.TrailingZeros(uint(pageSize))),
		mask:  pageSize - 1,
	}, nil
}

// parent returns the index of i's parent. i must be > 1.
//
//go:nosplit
func (g geometry) parent(i int) int {
	s := i & g.mask
	switch {
	case i < g.size || s > 3:
		// Same page, halved slot.
		return (i &^ g.mask) | (s >> 1)
	case s < 2:
		// Page entry slot: the parent sits in the last row of an earlier
		// page, selected by this page's number.
		p := (i - g.size) >> g.shift
		p += p &^ (g.mask >> 1)
		return p | (g.size >> 1)
	default:
		// Slots 2 and 3 of a non-root page hang off the entry slots.
		return i - 2
	}
}

// children returns the two child indexes of i. When both results are equal
// the node has a single child.
//
//go:nosplit
func (g geometry) children(i int) (int, int) {
	switch {
	case i > g.mask && i&(g.mask-1) == 0:
		// Entry slots 0 and 1 of a non-root page: one child each.
		return i + 2, i + 2
	case i&(g.size>>1) != 0:
		// Last row of a page: children open a new page.
		c := (i &^ g.mask) >> 1
		c |= i & (g.mask >> 1)
		c = (c + 1) << g.shift
		return c, c + 1
	default:
		c := i + (i & g.mask)
		return c, c + 1
	}
}
