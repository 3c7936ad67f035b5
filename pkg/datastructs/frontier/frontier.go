package frontier

import (
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-bounded/pkg/datastructs/heap"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/queue"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/value"
)

var (
	_ Frontier[value.Handle] = FIFO[value.Handle]{}
	_ Frontier[value.Handle] = Priority[value.Handle]{}
)

// ErrStop ends Drain early. Drain does not report it.
var ErrStop = errors.New("frontier: stop")

// Frontier is the working set of a traversal: discovered, not yet processed.
type Frontier[T value.Scalar] interface {
	// Push adds v. Implementations without ordering ignore priority.
	Push(priority int32, v T) error

	// Pop removes the next element to process.
	Pop() (T, error)

	// Len returns the number of pending elements.
	Len() int

	// Cap returns the maximum number of pending elements.
	Cap() int
}

// FIFO is a breadth-first frontier backed by queue.Ring.
type FIFO[T value.Scalar] struct {
	ring queue.Ring[T]
}

// FIFOBufferSize returns the region size NewFIFO needs.
func FIFOBufferSize[T value.Scalar](capacity int) (int, error) {
	return queue.BufferSize[T](capacity)
}

// NewFIFO places a FIFO frontier at the start of region.
func NewFIFO[T value.Scalar](capacity int, region []byte) (FIFO[T], error) {
	ring, err := queue.New[T](capacity, region)
	if err != nil {
		return FIFO[T]{}, err
	}
	return FIFO[T]{ring: ring}, nil
}

func (f FIFO[T]) Push(_ int32, v T) error { return f.ring.Insert(v) }
func (f FIFO[T]) Pop() (T, error) { return f.ring.Remove() }
func (f FIFO[T]) Len() int { return f.ring.Size() }
func (f FIFO[T]) Cap() int { return f.ring.Capacity() }

// Priority is a best-first frontier backed by heap.Heap.
type Priority[T value.Scalar] struct {
	heap heap.Heap[T]
}

// PriorityBufferSize returns the region size NewPriority needs.
func PriorityBufferSize[T value.Scalar](capacity int) (int, error) {
	return heap.BufferSize[T](capacity)
}

// NewPriority places a priority frontier ordered by cmp at the start of region.
func NewPriority[T value.Scalar](capacity int, cmp heap.Comparator, region []byte) (Priority[T], error) {
	h, err := heap.New[T](capacity, cmp, region)
	if err != nil {
		return Priority[T]{}, err
	}
	return Priority[T]{heap: h}, nil
}

func (f Priority[T]) Push(priority int32, v T) error { return f.heap.Insert(priority, v) }

func (f Priority[T]) Pop() (T, error) {
	_, v, err := f.PopItem()
	return v, err
}

// PopItem removes the highest-priority element and returns it with its priority.
func (f Priority[T]) PopItem() (int32, T, error) {
	k, v, err := f.heap.Peek()
	if err != nil {
		return k, v, err
	}
	if err = f.heap.Pop(); err != nil {
		var zero T
		return 0, zero, err
	}
	return k, v, nil
}

func (f Priority[T]) Len() int { return f.heap.Size() }
func (f Priority[T]) Cap() int { return f.heap.Capacity() }

// Visitor processes one element and may push successors onto f.
type Visitor[T value.Scalar] func(v T, f Frontier[T]) error

// Drain pops and visits elements until the frontier is empty or visit fails.
// Returning ErrStop from visit ends the walk without error. Drain returns the
// number of elements visited.
func Drain[T value.Scalar](f Frontier[T], visit Visitor[T]) (int, error) {
	visited := 0
	for f.Len() > 0 {
		v, err := f.Pop()
		if err != nil {
			return visited, errors.Wrap(err, "frontier: pop")
		}
		visited++
		if err = visit(v, f); err != nil {
			if errors.Is(err, ErrStop) {
				return visited, nil
			}
			return visited, errors.Wrapf(err, "frontier: visit #%d", visited)
		}
	}
	return visited, nil
}
