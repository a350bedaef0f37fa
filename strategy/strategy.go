// Package strategy names the storage strategies a priority queue can sit on
// and builds them behind one capability interface.
package strategy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codewanderer42820/pqueue/arrayq"
	"github.com/codewanderer42820/pqueue/bheap"
	"github.com/codewanderer42820/pqueue/binheap"
	"github.com/codewanderer42820/pqueue/compare"
)

var (
	ErrNoComparator = errors.New("strategy: comparator is required")
	ErrUnknownKind  = errors.New("strategy: unknown kind")
)

// Strategy is the operation set every backing store implements. Dequeue and
// Peek report ok=false on an empty store instead of failing; callers that
// need an error layer it on top.
type Strategy[T any] interface {
	Queue(v T)
	Dequeue() (T, bool)
	Peek() (T, bool)
	Clear()
	Len() int
}

var (
	_ Strategy[int] = (*arrayq.Queue[int])(nil)
	_ Strategy[int] = (*binheap.Heap[int])(nil)
	_ Strategy[int] = (*bheap.Heap[int])(nil)
)

// Kind selects a Strategy implementation. The zero value is BinaryHeap.
type Kind uint8

const (
	BinaryHeap Kind = iota
	Array
	BHeap
)

// Kinds lists every strategy in declaration order.
var Kinds = []Kind{BinaryHeap, Array, BHeap}

var kindNames = [...]string{
	BinaryHeap: "binaryheap",
	Array:      "array",
	BHeap:      "bheap",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind maps a name (case-insensitive, '-' and '_' ignored) to a Kind.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	for k, name := range kindNames {
		if name == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// New builds the strategy selected by kind. pageSize is only read by BHeap;
// 0 selects the default page size. initial is queued one value at a time.
func New[T any](kind Kind, cmp compare.Func[T], pageSize int, initial []T) (Strategy[T], error) {
	if cmp == nil {
		return nil, ErrNoComparator
	}
	switch kind {
	case BinaryHeap:
		return binheap.New(cmp, initial...), nil
	case Array:
		return arrayq.New(cmp, initial...), nil
	case BHeap:
		h, err := bheap.New(cmp, pageSize, initial...)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	return nil, fmt.Errorf("%w %d", ErrUnknownKind, uint8(kind))
}
