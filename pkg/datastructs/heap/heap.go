package heap

import (
	"encoding/binary"

	"github.com/huynhanx03/go-bounded/pkg/common/apperr"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/arena"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/value"
)

var (
	ErrFull          = apperr.NewError(component, apperr.OperationFailed, apperr.MsgFull)
	ErrEmpty         = apperr.NewError(component, apperr.OperationFailed, apperr.MsgEmpty)
	ErrNilRegion     = apperr.NewError(component, apperr.InvalidArgument, apperr.MsgNilRegion)
	ErrNilComparator = apperr.NewError(component, apperr.InvalidArgument, apperr.MsgNilComparator)
	ErrUninitialized = apperr.NewError(component, apperr.InvalidArgument, apperr.MsgUninitialized)
)

// Heap is a bounded binary priority queue of (key, value) nodes laid out
// inside a caller-owned region.
//
// Layout: [header | node 0 (unused) | node 1 (root) | ... | node capacity]
//
// The occupied nodes are exactly [1, nextEmpty). The comparator is fixed at
// creation. Like queue.Ring, Heap is a view over region state and is NOT
// thread-safe.
type Heap[T value.Scalar] struct {
	header []byte
	nodes  []byte
	cmp    Comparator
	codec  value.Codec[T]
	width  int // keySize + codec.Size()
}

// BufferSize returns the exact number of bytes New needs for capacity.
func BufferSize[T value.Scalar](capacity int) (int, error) {
	width := keySize + value.SizeOf[T]()
	if capacity < 1 {
		return 0, apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgBadCapacity, "capacity=%d", capacity)
	}
	if capacity > maxCapacity || capacity+rootIndex > (maxInt-headerSize)/width {
		return 0, apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCapacityLimit, "capacity=%d", capacity)
	}
	return headerSize + (capacity+rootIndex)*width, nil
}

// New lays out an empty heap of the given capacity at the start of region.
// Bytes past BufferSize(capacity) are left untouched.
func New[T value.Scalar](capacity int, cmp Comparator, region []byte) (Heap[T], error) {
	size, err := BufferSize[T](capacity)
	if err != nil {
		return Heap[T]{}, err
	}
	if cmp == nil {
		return Heap[T]{}, ErrNilComparator
	}
	if region == nil {
		return Heap[T]{}, ErrNilRegion
	}
	if len(region) < size {
		return Heap[T]{}, apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgSmallRegion,
			"have %d, need %d", len(region), size)
	}

	codec := value.CodecOf[T]()
	width := keySize + codec.Size()

	mem := arena.Wrap(region)
	header, err := mem.Allocate(headerSize)
	if err != nil {
		return Heap[T]{}, apperr.MapError(component, err, apperr.InvalidArgument, apperr.MsgSmallRegion)
	}
	nodes, err := mem.Allocate((capacity + rootIndex) * width)
	if err != nil {
		return Heap[T]{}, apperr.MapError(component, err, apperr.InvalidArgument, apperr.MsgSmallRegion)
	}
	if mem.Used() != size {
		return Heap[T]{}, apperr.NewErrorf(component, apperr.AllocationFailed, apperr.MsgLayoutDrift,
			"used %d, sized %d", mem.Used(), size)
	}

	h := Heap[T]{header: header, nodes: nodes, cmp: cmp, codec: codec, width: width}
	h.put(capacityOff, uint32(capacity))
	h.put(nextEmptyOff, rootIndex)
	return h, nil
}

func (h Heap[T]) get(off int) uint32 { return binary.LittleEndian.Uint32(h.header[off:]) }
func (h Heap[T]) put(off int, v uint32) { binary.LittleEndian.PutUint32(h.header[off:], v) }
func (h Heap[T]) capacity() int { return int(h.get(capacityOff)) }
func (h Heap[T]) nextEmpty() int { return int(h.get(nextEmptyOff)) }
func (h Heap[T]) size() int { return h.nextEmpty() - rootIndex }
func (h Heap[T]) node(i int) []byte { return h.nodes[i*h.width : (i+1)*h.width] }
func (h Heap[T]) key(i int) int32 { return int32(binary.LittleEndian.Uint32(h.node(i))) }

func (h Heap[T]) setNode(i int, key int32, v T) {
	n := h.node(i)
	binary.LittleEndian.PutUint32(n, uint32(key))
	h.codec.Put(n[keySize:], v)
}

func (h Heap[T]) swap(i, j int) {
	a, b := h.node(i), h.node(j)
	for k := range a {
		a[k], b[k] = b[k], a[k]
	}
}

// Insert appends (key, v) and sifts it up. Returns ErrFull without touching
// the region if the heap already holds Capacity nodes.
func (h Heap[T]) Insert(key int32, v T) error {
	if h.header == nil {
		return ErrUninitialized
	}
	if h.size() >= h.capacity() {
		return ErrFull
	}

	child := h.nextEmpty()
	h.setNode(child, key, v)
	h.put(nextEmptyOff, uint32(child+1))

	// Sift up: stop at the root or at the first parent that outranks or ties.
	for child > rootIndex {
		parent := child / 2
		if h.cmp(h.key(parent), h.key(child)) <= 0 {
			break
		}
		h.swap(parent, child)
		child = parent
	}
	return nil
}

// Peek returns the root node without removing it.
func (h Heap[T]) Peek() (int32, T, error) {
	var zero T
	if h.header == nil {
		return 0, zero, ErrUninitialized
	}
	if h.size() == 0 {
		return 0, zero, ErrEmpty
	}
	n := h.node(rootIndex)
	return int32(binary.LittleEndian.Uint32(n)), h.codec.Get(n[keySize:]), nil
}

// Pop removes the root node: the last node moves to the root and sifts down.
func (h Heap[T]) Pop() error {
	if h.header == nil {
		return ErrUninitialized
	}
	if h.size() == 0 {
		return ErrEmpty
	}

	last := h.nextEmpty() - 1
	copy(h.node(rootIndex), h.node(last))
	h.put(nextEmptyOff, uint32(last))

	// Sift down: swap with whichever child outranks both siblings and parent.
	end := last
	parent := rootIndex
	for {
		left := 2 * parent
		if left >= end {
			break
		}
		best := parent
		if h.cmp(h.key(left), h.key(best)) < 0 {
			best = left
		}
		if right := left + 1; right < end && h.cmp(h.key(right), h.key(best)) < 0 {
			best = right
		}
		if best == parent {
			break
		}
		h.swap(parent, best)
		parent = best
	}
	return nil
}

// Capacity returns the maximum number of nodes.
func (h Heap[T]) Capacity() int {
	if h.header == nil {
		return 0
	}
	return h.capacity()
}

// Size returns the number of occupied nodes.
func (h Heap[T]) Size() int {
	if h.header == nil {
		return 0
	}
	return h.size()
}

// IsEmpty reports whether the heap holds no nodes.
func (h Heap[T]) IsEmpty() bool { return h.Size() == 0 }

// IsFull reports whether Insert would fail.
func (h Heap[T]) IsFull() bool { return h.header != nil && h.size() >= h.capacity() }

// Footprint returns the number of region bytes the heap occupies.
func (h Heap[T]) Footprint() int {
	return len(h.header) + len(h.nodes)
}

// Check re-validates the whole heap: header fields first, then the heap
// property of every occupied node against its parent. O(n); meant for
// assertions and tests.
func (h Heap[T]) Check() error {
	if h.header == nil || h.nodes == nil || h.cmp == nil {
		return ErrUninitialized
	}
	capacity, next := h.capacity(), h.nextEmpty()
	switch {
	case capacity < 1 || (capacity+rootIndex)*h.width != len(h.nodes):
		return apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCorrupt,
			"capacity=%d does not match %d node bytes", capacity, len(h.nodes))
	case next < rootIndex || next-rootIndex > capacity:
		return apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCorrupt,
			"nextEmpty=%d capacity=%d", next, capacity)
	}

	for i := rootIndex + 1; i < next; i++ {
		parent := i / 2
		if h.cmp(h.key(i), h.key(parent)) < 0 {
			return apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgHeapViolation,
				"node %d (key %d) outranks parent %d (key %d)", i, h.key(i), parent, h.key(parent))
		}
	}
	return nil
}
