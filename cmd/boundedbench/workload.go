package main

import (
	"context"
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/huynhanx03/go-bounded/pkg/common/apperr"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/arena"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/heap"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/queue"
	"github.com/huynhanx03/go-bounded/pkg/datastructs/value"
	"github.com/huynhanx03/go-bounded/pkg/settings"
)

// ctxCheckEvery is how many operations run between context checks.
const ctxCheckEvery = 1024

// WorkerResult is what one worker reports for one round.
type WorkerResult struct {
	Worker      int    `json:"worker"`
	QueueOps    int    `json:"queue_ops"`
	QueueFull   int    `json:"queue_full"`  // rejected inserts
	QueueEmpty  int    `json:"queue_empty"` // rejected removes
	QueueDigest uint64 `json:"queue_digest"`
	HeapOps     int    `json:"heap_ops"`
	HeapFull    int    `json:"heap_full"`
	HeapEmpty   int    `json:"heap_empty"`
}

// layout returns the per-worker byte counts for the queue and heap regions.
func layout(cfg settings.Bench) (qSize, hSize int, err error) {
	if qSize, err = queue.BufferSize[value.Handle](cfg.QueueCapacity); err != nil {
		return 0, 0, err
	}
	if hSize, err = heap.BufferSize[value.Value](cfg.HeapCapacity); err != nil {
		return 0, 0, err
	}
	return qSize, hSize, nil
}

// carve splits one arena into disjoint (queue, heap) regions, one pair per worker.
func carve(cfg settings.Bench, mem []byte) ([][2][]byte, error) {
	qSize, hSize, err := layout(cfg)
	if err != nil {
		return nil, err
	}
	r := arena.Wrap(mem)
	out := make([][2][]byte, cfg.Workers)
	for i := range out {
		if out[i][0], err = r.Allocate(qSize); err != nil {
			return nil, errors.Wrapf(err, "worker %d queue region", i)
		}
		if out[i][1], err = r.Allocate(hSize); err != nil {
			return nil, errors.Wrapf(err, "worker %d heap region", i)
		}
	}
	return out, nil
}

// runQueue drives a random insert/remove mix and verifies FIFO order twice:
// removed sequence numbers must be consecutive, and the xxhash digest of
// everything inserted must equal the digest of everything removed.
func runQueue(ctx context.Context, cfg settings.Bench, rng *rand.Rand, region []byte, res *WorkerResult) error {
	q, err := queue.New[value.Handle](cfg.QueueCapacity, region)
	if err != nil {
		return err
	}

	in, out := xxhash.New(), xxhash.New()
	var scratch [8]byte
	digest := func(d *xxhash.Digest, h value.Handle) {
		binary.LittleEndian.PutUint64(scratch[:], uint64(h))
		_, _ = d.Write(scratch[:])
	}

	var produced, consumed value.Handle
	remove := func() error {
		got, err := q.Remove()
		if err != nil {
			return err
		}
		if got != consumed {
			return errors.Errorf("queue: removed %d, want %d", got, consumed)
		}
		consumed++
		digest(out, got)
		return nil
	}

	for op := 0; op < cfg.Operations; op++ {
		if op%ctxCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if rng.IntN(2) == 0 {
			err = q.Insert(produced)
			switch {
			case err == nil:
				digest(in, produced)
				produced++
			case apperr.CodeOf(err) == apperr.OperationFailed && q.Size() == cfg.QueueCapacity:
				res.QueueFull++
			default:
				return err
			}
		} else {
			err = remove()
			switch {
			case err == nil:
			case apperr.CodeOf(err) == apperr.OperationFailed && q.Size() == 0:
				res.QueueEmpty++
			default:
				return err
			}
		}
		if want := int(produced - consumed); q.Size() != want {
			return errors.Errorf("queue: size %d, want %d", q.Size(), want)
		}
	}

	for !q.IsEmpty() {
		if err = remove(); err != nil {
			return err
		}
	}
	if in.Sum64() != out.Sum64() {
		return errors.Errorf("queue: digest mismatch in=%x out=%x", in.Sum64(), out.Sum64())
	}
	res.QueueOps = cfg.Operations
	res.QueueDigest = out.Sum64()
	return nil
}

// runHeap drives a random insert/pop mix, re-validating the heap after every
// operation, then drains it and checks keys come out in ascending order.
func runHeap(ctx context.Context, cfg settings.Bench, rng *rand.Rand, region []byte, res *WorkerResult) error {
	h, err := heap.New[value.Value](cfg.HeapCapacity, heap.Ascending, region)
	if err != nil {
		return err
	}

	for op := 0; op < cfg.Operations; op++ {
		if op%ctxCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if rng.IntN(3) != 0 {
			key := rng.Int32N(1 << 16)
			err = h.Insert(key, value.FromInt(key))
			if err != nil {
				if !h.IsFull() {
					return err
				}
				res.HeapFull++
			}
		} else {
			key, v, err := h.Peek()
			if err != nil {
				if !h.IsEmpty() {
					return err
				}
				res.HeapEmpty++
				continue
			}
			if got, ok := v.AsInt(); !ok || got != key {
				return errors.Errorf("heap: root payload %v does not match key %d", v, key)
			}
			if err = h.Pop(); err != nil {
				return err
			}
		}
		if err = h.Check(); err != nil {
			return err
		}
	}

	last := int32(-1)
	for !h.IsEmpty() {
		key, _, err := h.Peek()
		if err != nil {
			return err
		}
		if key < last {
			return errors.Errorf("heap: popped %d after %d", key, last)
		}
		last = key
		if err = h.Pop(); err != nil {
			return err
		}
	}
	res.HeapOps = cfg.Operations
	return nil
}
