// Package compare defines the three-way comparator every queue strategy
// orders its values with.
//
// A Func returns a negative number when a sorts before b, zero when they
// are equivalent and a positive number otherwise. The queues are min-first:
// the value that sorts first is the one Dequeue returns.
package compare

import "golang.org/x/exp/constraints"

// Func is a three-way comparison over T. It must be consistent and define a
// strict weak ordering or the heap invariant cannot hold.
type Func[T any] func(a, b T) int

// Ascending orders any ordered type from smallest to largest.
// NaN sorts before every other float so the order stays total.
func Ascending[T constraints.Ordered](a, b T) int {
	aNaN, bNaN := a != a, b != b
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	case bNaN:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Descending orders from largest to smallest, turning a min-queue into a
// max-queue.
func Descending[T constraints.Ordered](a, b T) int {
	return Ascending(b, a)
}

// Reverse flips the order produced by f.
func Reverse[T any](f Func[T]) Func[T] {
	return func(a, b T) int { return f(b, a) }
}

// By orders values by an extracted key.
func By[T any, K constraints.Ordered](key func(T) K) Func[T] {
	return func(a, b T) int { return Ascending(key(a), key(b)) }
}
