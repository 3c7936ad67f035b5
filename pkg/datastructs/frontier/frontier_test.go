package frontier

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huynhanx03/go-bounded/pkg/common/apperr"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/heap"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/queue"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/value"
)

// grid is a small maze; '#' cells are walls. Weights are the digit in the cell
// ('.' counts as 1).
var grid = []string{
	".....",
	".###.",
	".#9..",
	".#.#.",
	"...#.",
}

const gridW, gridH = 5, 5

func cell(h value.Handle) (x, y int) { return int(h) % gridW, int(h) / gridW }
func handle(x, y int) value.Handle { return value.Handle(y*gridW + x) }

func weight(x, y int) int32 {
	if c := grid[y][x]; c >= '1' && c <= '9' {
		return int32(c - '0')
	}
	return 1
}

func neighbours(h value.Handle, fn func(value.Handle)) {
	x, y := cell(h)
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || ny < 0 || nx >= gridW || ny >= gridH || grid[ny][nx] == '#' {
			continue
		}
		fn(handle(nx, ny))
	}
}

func newFIFO(t *testing.T, capacity int) FIFO[value.Handle] {
	t.Helper()
	size, err := FIFOBufferSize[value.Handle](capacity)
	require.NoError(t, err)
	f, err := NewFIFO[value.Handle](capacity, make([]byte, size))
	require.NoError(t, err)
	return f
}

func newPriority(t *testing.T, capacity int) Priority[value.Handle] {
	t.Helper()
	size, err := PriorityBufferSize[value.Handle](capacity)
	require.NoError(t, err)
	f, err := NewPriority[value.Handle](capacity, heap.Ascending, make([]byte, size))
	require.NoError(t, err)
	return f
}

// =============================================================================
// Breadth-first
// =============================================================================

func TestFIFO_BreadthFirstDistances(t *testing.T) {
	f := newFIFO(t, gridW*gridH)
	dist := make([]int, gridW*gridH)
	for i := range dist {
		dist[i] = -1
	}

	start := handle(0, 0)
	dist[start] = 0
	require.NoError(t, f.Push(0, start))

	visited, err := Drain[value.Handle](f, func(h value.Handle, f Frontier[value.Handle]) error {
		var pushErr error
		neighbours(h, func(n value.Handle) {
			if dist[n] >= 0 || pushErr != nil {
				return
			}
			dist[n] = dist[h] + 1
			pushErr = f.Push(0, n)
		})
		return pushErr
	})
	require.NoError(t, err)

	assert.Equal(t, 18, visited, "every open cell is reached exactly once")
	assert.Equal(t, 8, dist[handle(4, 4)])
	assert.Equal(t, 8, dist[handle(2, 2)])
	assert.Equal(t, -1, dist[handle(1, 1)], "walls stay unreached")
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, gridW*gridH, f.Cap())
}

func TestFIFO_OrderIgnoresPriority(t *testing.T) {
	f := newFIFO(t, 3)
	require.NoError(t, f.Push(9, 1))
	require.NoError(t, f.Push(1, 2))
	require.NoError(t, f.Push(5, 3))

	for _, want := range []value.Handle{1, 2, 3} {
		got, err := f.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := f.Pop()
	assert.ErrorIs(t, err, queue.ErrEmpty)
}

// =============================================================================
// Best-first
// =============================================================================

func TestPriority_ShortestPaths(t *testing.T) {
	f := newPriority(t, 64)
	const inf = int32(1 << 30)
	dist := make([]int32, gridW*gridH)
	for i := range dist {
		dist[i] = inf
	}

	start := handle(0, 0)
	dist[start] = 0
	require.NoError(t, f.Push(0, start))

	for f.Len() > 0 {
		d, h, err := f.PopItem()
		require.NoError(t, err)
		if d > dist[h] {
			continue // stale entry
		}
		neighbours(h, func(n value.Handle) {
			nx, ny := cell(n)
			if nd := d + weight(nx, ny); nd < dist[n] {
				dist[n] = nd
				require.NoError(t, f.Push(nd, n))
			}
		})
	}

	// Entering (2,2) costs 9 from either side.
	assert.Equal(t, int32(16), dist[handle(2, 2)])
	assert.Equal(t, int32(8), dist[handle(4, 4)])
	assert.Equal(t, int32(7), dist[handle(2, 3)])
}

func TestPriority_PopItemOrder(t *testing.T) {
	f := newPriority(t, 4)
	for _, k := range []int32{7, -2, 3, 0} {
		require.NoError(t, f.Push(k, value.Handle(k+100)))
	}
	assert.Equal(t, 4, f.Len())
	assert.Equal(t, 4, f.Cap())

	for _, want := range []int32{-2, 0, 3, 7} {
		k, v, err := f.PopItem()
		require.NoError(t, err)
		assert.Equal(t, want, k)
		assert.Equal(t, value.Handle(want+100), v)
	}

	_, _, err := f.PopItem()
	assert.ErrorIs(t, err, heap.ErrEmpty)
	_, err = f.Pop()
	assert.ErrorIs(t, err, heap.ErrEmpty)
}

// =============================================================================
// Drain
// =============================================================================

func TestDrain_Stop(t *testing.T) {
	f := newFIFO(t, 4)
	for i := range 4 {
		require.NoError(t, f.Push(0, value.Handle(i)))
	}

	visited, err := Drain[value.Handle](f, func(h value.Handle, _ Frontier[value.Handle]) error {
		if h == 1 {
			return ErrStop
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, visited)
	assert.Equal(t, 2, f.Len(), "stop leaves the rest pending")
}

func TestDrain_FullFrontier(t *testing.T) {
	f := newFIFO(t, 2)
	require.NoError(t, f.Push(0, 0))

	visited, err := Drain[value.Handle](f, func(h value.Handle, f Frontier[value.Handle]) error {
		for i := range 3 {
			if err := f.Push(0, h*10+value.Handle(i)+1); err != nil {
				return err
			}
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 1, visited)
	assert.ErrorIs(t, err, queue.ErrFull)
	assert.Equal(t, apperr.OperationFailed, apperr.CodeOf(err))
	assert.Contains(t, err.Error(), "frontier: visit #1")
}

func TestDrain_VisitorError(t *testing.T) {
	f := newPriority(t, 2)
	require.NoError(t, f.Push(1, 5))

	boom := errors.New("boom")
	_, err := Drain[value.Handle](f, func(value.Handle, Frontier[value.Handle]) error { return boom })
	assert.ErrorIs(t, err, boom)
}
