package arena

import (
	"github.com/huynhanx03/go-bounded/pkg/common/apperr"
)

// ErrExhausted is returned when a carve does not fit in the remaining bytes.
var ErrExhausted = apperr.NewError("arena", apperr.AllocationFailed, apperr.MsgExhausted)

// Region carves consecutive sub-slices out of a caller-owned byte slice.
// It never allocates, grows or frees: the bytes belong to the caller for the
// whole lifetime of everything carved from them.
// It is NOT thread-safe.
type Region struct {
	data   []byte // caller storage
	offset int    // next byte to hand out
}

// Wrap returns a Region over b. A nil b yields an empty Region.
func Wrap(b []byte) Region {
	return Region{data: b}
}

// Allocate returns the next n bytes for direct use. The returned slice is
// capped at n so writes through it cannot spill into the next carve.
func (r *Region) Allocate(n int) ([]byte, error) {
	if n < 0 {
		return nil, apperr.NewErrorf("arena", apperr.InvalidArgument, "negative size", "n=%d", n)
	}
	if n > r.Available() {
		return nil, ErrExhausted
	}
	off := r.offset
	r.offset += n
	return r.data[off:r.offset:r.offset], nil
}

// AllocateOffset executes Allocate but returns the start offset instead of the slice.
func (r *Region) AllocateOffset(n int) (int, error) {
	if _, err := r.Allocate(n); err != nil {
		return 0, err
	}
	return r.offset - n, nil
}

// Used returns the number of bytes handed out so far.
func (r *Region) Used() int { return r.offset }

// Available returns the number of bytes still free.
func (r *Region) Available() int { return len(r.data) - r.offset }

// Len returns the size of the wrapped slice.
func (r *Region) Len() int { return len(r.data) }

// IsNil reports whether the Region wraps no storage at all.
func (r *Region) IsNil() bool { return r.data == nil }

// Reset rewinds the carve offset. Bytes are not cleared; anything carved
// earlier must no longer be in use.
func (r *Region) Reset() { r.offset = 0 }

// Bytes returns the carved prefix of the region.
func (r *Region) Bytes() []byte { return r.data[:r.offset] }
