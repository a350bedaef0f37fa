package binheap

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewanderer42820/pqueue/compare"
)

func TestHeapOrder(t *testing.T) {
	h := New(compare.Ascending[int], 5, 5, 1, 1, 3)
	assert.Equal(t, 5, h.Len())

	var got []int
	for !h.Empty() {
		v, ok := h.Dequeue()
		require.True(t, ok)
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 1, 3, 5, 5}, got)
}

func TestEmptyAndClear(t *testing.T) {
	h := New[string](compare.Ascending[string])
	_, ok := h.Peek()
	assert.False(t, ok)
	_, ok = h.Dequeue()
	assert.False(t, ok)

	h.Queue("b")
	h.Queue("a")
	h.Clear()
	assert.Zero(t, h.Len())
	h.Queue("z")
	v, ok := h.Peek()
	assert.True(t, ok)
	assert.Equal(t, "z", v)
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	h := New(compare.Ascending[int])
	want := make([]int, 0, 2000)
	for range 2000 {
		v := rng.Intn(500)
		want = append(want, v)
		h.Queue(v)
	}
	slices.Sort(want)
	for i, w := range want {
		v, ok := h.Dequeue()
		require.True(t, ok)
		if v != w {
			t.Fatalf("dequeue %d = %d, want %d", i, v, w)
		}
	}
}
