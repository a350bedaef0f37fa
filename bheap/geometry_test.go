package bheap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewanderer42820/pqueue/constants"
)

func mustGeometry(t *testing.T, pageSize int) geometry {
	t.Helper()
	g, err := newGeometry(pageSize)
	require.NoError(t, err)
	return g
}

func TestNewGeometry(t *testing.T) {
	for _, size := range []int{4, 8, 16, 512, 1 << 20, constants.MaxPageSize} {
		g := mustGeometry(t, size)
		assert.Equal(t, size, 1<<g.shift)
		assert.Equal(t, size-1, g.mask)
	}
	for _, size := range []int{-8, 0, 1, 2, 3, 6, 12, 511, 513, constants.MaxPageSize << 1, 1 << 62} {
		_, err := newGeometry(size)
		assert.ErrorIs(t, err, ErrPageSize, "size %d", size)
	}
}

// Hand-checked links for a 4-slot page: page 0 holds 1..3, page 1 hangs
// off slot 3 and so on.
func TestParentPageSize4(t *testing.T) {
	g := mustGeometry(t, 4)
	want := map[int]int{
		2: 1, 3: 1, 4: 2, 5: 2, 6: 4, 7: 5,
		8: 3, 9: 3, 10: 8, 11: 9,
		12: 6, 13: 6, 14: 12, 15: 13,
		16: 7, 17: 7, 18: 16, 19: 17,
		20: 10, 21: 10, 22: 20, 23: 21, 24: 11,
	}
	for i, p := range want {
		assert.Equal(t, p, g.parent(i), "parent(%d)", i)
	}
}

func TestChildrenPageSize4(t *testing.T) {
	g := mustGeometry(t, 4)
	want := map[int][2]int{
		1: {2, 3}, 2: {4, 5}, 3: {8, 9},
		4: {6, 6}, 5: {7, 7}, 6: {12, 13}, 7: {16, 17},
		8: {10, 10}, 9: {11, 11}, 10: {20, 21}, 11: {24, 25},
	}
	for i, c := range want {
		c1, c2 := g.children(i)
		assert.Equal(t, c, [2]int{c1, c2}, "children(%d)", i)
	}
}

func TestParentPageSize8(t *testing.T) {
	g := mustGeometry(t, 8)
	want := map[int]int{
		2: 1, 3: 1, 4: 2, 5: 2, 6: 3, 7: 3,
		8: 4, 9: 4, 10: 8, 11: 9, 12: 10, 13: 10, 14: 11, 15: 11,
		16: 5, 17: 5, 18: 16, 19: 17, 24: 6,
	}
	for i, p := range want {
		assert.Equal(t, p, g.parent(i), "parent(%d)", i)
	}
}

// Every index past the root must be reached from exactly one parent, and
// the parent must agree with the child links. Together these mean a heap
// over [1, n] is a proper tree for any n.
func TestLinksAgree(t *testing.T) {
	const n = 1 << 14
	for _, size := range []int{4, 8, 16, 64, 512} {
		g := mustGeometry(t, size)
		reached := make([]int, n)
		for i := 1; i < n; i++ {
			c1, c2 := g.children(i)
			for _, c := range uniq(c1, c2) {
				if c >= n {
					continue
				}
				if p := g.parent(c); p != i {
					t.Fatalf("size %d: children(%d) includes %d but parent(%d) = %d", size, i, c, c, p)
				}
				reached[c]++
			}
		}
		for c := 2; c < n; c++ {
			if reached[c] != 1 {
				t.Fatalf("size %d: index %d reached %d times", size, c, reached[c])
			}
			if p := g.parent(c); p >= c || p < 1 {
				t.Fatalf("size %d: parent(%d) = %d out of order", size, c, p)
			}
		}
	}
}

// Inside the first page, before the last row, the layout is the classic
// 1-based binary heap.
func TestFirstPageMatchesClassicHeap(t *testing.T) {
	for _, size := range []int{4, 8, 64, 512} {
		g := mustGeometry(t, size)
		for i := 2; i < size; i++ {
			assert.Equal(t, i/2, g.parent(i), "size %d parent(%d)", size, i)
		}
		for i := 1; 2*i+1 < size; i++ {
			c1, c2 := g.children(i)
			assert.Equal(t, [2]int{2 * i, 2*i + 1}, [2]int{c1, c2}, "size %d children(%d)", size, i)
		}
	}
}

func uniq(a, b int) []int {
	if a == b {
		return []int{a}
	}
	return []int{a, b}
}
