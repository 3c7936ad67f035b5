package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/go-bounded/pkg/common/apperr"
)

func TestRegion_Allocate(t *testing.T) {
	backing := make([]byte, 32)
	r := Wrap(backing)
	require.Equal(t, 32, r.Len())
	require.Equal(t, 32, r.Available())

	a, err := r.Allocate(8)
	require.NoError(t, err)
	b, err := r.Allocate(16)
	require.NoError(t, err)

	assert.Len(t, a, 8)
	assert.Equal(t, 8, cap(a), "carved slice must be capped")
	assert.Len(t, b, 16)
	assert.Equal(t, 24, r.Used())
	assert.Equal(t, 8, r.Available())

	// Appending to a capped carve must not clobber the next one.
	b[0] = 0x11
	_ = append(a, 0xFF)
	assert.Equal(t, byte(0x11), b[0])

	a[0] = 0x22
	assert.Equal(t, byte(0x22), backing[0], "carves alias the caller's bytes")
	assert.Equal(t, backing[:24], r.Bytes())
}

func TestRegion_AllocateExact(t *testing.T) {
	r := Wrap(make([]byte, 10))
	_, err := r.Allocate(10)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Available())

	_, err = r.Allocate(0)
	assert.NoError(t, err, "zero-byte carve always fits")
}

func TestRegion_Errors(t *testing.T) {
	r := Wrap(make([]byte, 4))

	_, err := r.Allocate(5)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, apperr.AllocationFailed, apperr.CodeOf(err))
	assert.Equal(t, 0, r.Used(), "failed carve must not advance")

	_, err = r.Allocate(-1)
	assert.Equal(t, apperr.InvalidArgument, apperr.CodeOf(err))

	nilRegion := Wrap(nil)
	assert.True(t, nilRegion.IsNil())
	_, err = nilRegion.Allocate(1)
	assert.ErrorIs(t, err, apperr.ErrAllocationFailed)
}

func TestRegion_AllocateOffsetAndReset(t *testing.T) {
	r := Wrap(make([]byte, 16))
	off, err := r.AllocateOffset(4)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	off, err = r.AllocateOffset(4)
	require.NoError(t, err)
	assert.Equal(t, 4, off)

	r.Reset()
	assert.Equal(t, 0, r.Used())
	off, err = r.AllocateOffset(16)
	require.NoError(t, err)
	assert.Equal(t, 0, off)
}

// Disjoint carves can be handed to different goroutines.
func TestRegion_DisjointCarvesInParallel(t *testing.T) {
	const parts, width = 8, 1024
	r := Wrap(make([]byte, parts*width))

	carves := make([][]byte, parts)
	for i := range carves {
		var err error
		carves[i], err = r.Allocate(width)
		require.NoError(t, err)
	}

	var g errgroup.Group
	for i, c := range carves {
		g.Go(func() error {
			for j := range c {
				c[j] = byte(i)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, c := range carves {
		for _, b := range c {
			require.Equal(t, byte(i), b)
		}
	}
}
