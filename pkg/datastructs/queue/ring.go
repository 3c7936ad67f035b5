package queue

import (
	"encoding/binary"

	"github.com/huynhanx03/go-bounded/pkg/common/apperr"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/arena"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/value"
)

var _ Queue[int32] = Ring[int32]{}

var (
	ErrFull          = apperr.NewError(component, apperr.OperationFailed, apperr.MsgFull)
	ErrEmpty         = apperr.NewError(component, apperr.OperationFailed, apperr.MsgEmpty)
	ErrNilRegion     = apperr.NewError(component, apperr.InvalidArgument, apperr.MsgNilRegion)
	ErrUninitialized = apperr.NewError(component, apperr.InvalidArgument, apperr.MsgUninitialized)
)

// Ring is a bounded circular FIFO laid out inside a caller-owned region.
//
// Layout: [header | slot 0 | slot 1 | ... | slot capacity]
//
// The slot array holds capacity+1 entries. One of them is always free:
// head == tail means empty and head == (tail+1) % nodeCount means full, so no
// separate counter is stored. Size and fullness are both derived from that
// gap; removing the extra slot breaks the arithmetic.
//
// All state, including head and tail, lives in the region. Ring itself is a
// view: copies share state, and the view is valid as long as the caller keeps
// the region alive and unaliased. It is NOT thread-safe.
type Ring[T value.Scalar] struct {
	header []byte
	slots  []byte
	codec  value.Codec[T]
	width  int
}

// BufferSize returns the exact number of bytes New needs for capacity.
func BufferSize[T value.Scalar](capacity int) (int, error) {
	width := value.SizeOf[T]()
	if capacity < 1 {
		return 0, apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgBadCapacity, "capacity=%d", capacity)
	}
	if capacity > maxCapacity || capacity+sentinelSlots > (maxInt-headerSize)/width {
		return 0, apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCapacityLimit, "capacity=%d", capacity)
	}
	return headerSize + (capacity+sentinelSlots)*width, nil
}

// New lays out an empty ring of the given capacity at the start of region.
// Bytes past BufferSize(capacity) are left untouched.
func New[T value.Scalar](capacity int, region []byte) (Ring[T], error) {
	size, err := BufferSize[T](capacity)
	if err != nil {
		return Ring[T]{}, err
	}
	if region == nil {
		return Ring[T]{}, ErrNilRegion
	}
	if len(region) < size {
		return Ring[T]{}, apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgSmallRegion,
			"have %d, need %d", len(region), size)
	}

	codec := value.CodecOf[T]()
	nodeCount := capacity + sentinelSlots

	mem := arena.Wrap(region)
	header, err := mem.Allocate(headerSize)
	if err != nil {
		return Ring[T]{}, apperr.MapError(component, err, apperr.InvalidArgument, apperr.MsgSmallRegion)
	}
	slots, err := mem.Allocate(nodeCount * codec.Size())
	if err != nil {
		return Ring[T]{}, apperr.MapError(component, err, apperr.InvalidArgument, apperr.MsgSmallRegion)
	}
	if mem.Used() != size {
		return Ring[T]{}, apperr.NewErrorf(component, apperr.AllocationFailed, apperr.MsgLayoutDrift,
			"used %d, sized %d", mem.Used(), size)
	}

	q := Ring[T]{header: header, slots: slots, codec: codec, width: codec.Size()}
	q.put(capacityOff, uint32(capacity))
	q.put(nodeCountOff, uint32(nodeCount))
	q.put(headOff, 0)
	q.put(tailOff, 0)
	return q, nil
}

func (q Ring[T]) get(off int) uint32 { return binary.LittleEndian.Uint32(q.header[off:]) }
func (q Ring[T]) put(off int, v uint32) { binary.LittleEndian.PutUint32(q.header[off:], v) }
func (q Ring[T]) slot(i uint32) []byte { return q.slots[int(i)*q.width : int(i+1)*q.width] }
func (q Ring[T]) head() uint32 { return q.get(headOff) }
func (q Ring[T]) tail() uint32 { return q.get(tailOff) }
func (q Ring[T]) nodeCount() uint32 { return q.get(nodeCountOff) }
func (q Ring[T]) next(i uint32) uint32 { return (i + 1) % q.nodeCount() }
func (q Ring[T]) isEmpty(h, t uint32) bool { return h == t }
func (q Ring[T]) isFull(h, t uint32) bool { return h == q.next(t) }

// Insert stores item at the tail. Returns ErrFull without touching the
// region if the ring already holds Capacity items.
func (q Ring[T]) Insert(item T) error {
	if q.header == nil {
		return ErrUninitialized
	}
	h, t := q.head(), q.tail()
	if q.isFull(h, t) {
		return ErrFull
	}
	q.codec.Put(q.slot(t), item)
	q.put(tailOff, q.next(t))
	return nil
}

// Remove returns the item at the head. Returns ErrEmpty without touching the
// region if the ring is empty.
func (q Ring[T]) Remove() (T, error) {
	var zero T
	if q.header == nil {
		return zero, ErrUninitialized
	}
	h, t := q.head(), q.tail()
	if q.isEmpty(h, t) {
		return zero, ErrEmpty
	}
	item := q.codec.Get(q.slot(h))
	q.put(headOff, q.next(h))
	return item, nil
}

// InsertBatch inserts items in order until the ring fills. Returns the count inserted.
func (q Ring[T]) InsertBatch(items []T) int {
	count := 0
	for _, item := range items {
		if q.Insert(item) != nil {
			break
		}
		count++
	}
	return count
}

// RemoveBatch removes items into out until the ring empties. Returns the count removed.
func (q Ring[T]) RemoveBatch(out []T) int {
	count := 0
	for i := range out {
		item, err := q.Remove()
		if err != nil {
			break
		}
		out[i] = item
		count++
	}
	return count
}

// Capacity returns the maximum number of live items.
func (q Ring[T]) Capacity() int {
	if q.header == nil {
		return 0
	}
	return int(q.get(capacityOff))
}

// Size returns (tail - head) mod nodeCount.
func (q Ring[T]) Size() int {
	if q.header == nil {
		return 0
	}
	n := q.nodeCount()
	return int((q.tail() + n - q.head()) % n)
}

// IsEmpty reports whether the ring holds no items.
func (q Ring[T]) IsEmpty() bool {
	return q.header == nil || q.isEmpty(q.head(), q.tail())
}

// IsFull reports whether Insert would fail.
func (q Ring[T]) IsFull() bool {
	return q.header != nil && q.isFull(q.head(), q.tail())
}

// Footprint returns the number of region bytes the ring occupies.
func (q Ring[T]) Footprint() int {
	return len(q.header) + len(q.slots)
}

// Check re-validates the header stored in the region.
func (q Ring[T]) Check() error {
	if q.header == nil {
		return ErrUninitialized
	}
	capacity, n := q.get(capacityOff), q.nodeCount()
	switch {
	case capacity < 1 || n != capacity+sentinelSlots:
		return apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCorrupt,
			"capacity=%d nodeCount=%d", capacity, n)
	case int(n)*q.width != len(q.slots):
		return apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCorrupt,
			"nodeCount=%d does not match %d slot bytes", n, len(q.slots))
	case q.head() >= n || q.tail() >= n:
		return apperr.NewErrorf(component, apperr.InvalidArgument, apperr.MsgCorrupt,
			"head=%d tail=%d nodeCount=%d", q.head(), q.tail(), n)
	}
	return nil
}
