package readyq

import (
	"fmt"

	"github.com/joeycumines/go-readyq/internal/deque"
)

const (
	tierNegative = `negative`
	tierPositive = `positive`
)

type (
	// Queue is a tiered priority ready queue. Items are dequeued in ascending
	// priority order: the negative tier (minimum bucket first), then the zero
	// tier, then the positive tier. Within a bucket, FIFO strategies preserve
	// arrival order and LIFO strategies reverse it.
	//
	// Thread Safety: Queue is NOT thread-safe. All calls must be serialized
	// by the caller, e.g. using a mutex, see also Pool.
	//
	// Instances must be initialized using the New factory.
	Queue[E comparable] struct {
		report    *reporter
		neg       *bucketIndex[E]
		pos       *bucketIndex[E]
		zero      deque.Deque[E]
		length    int
		maxLength int
	}

	// Stats is a point-in-time summary of a Queue.
	Stats struct {
		// Len is the number of queued items.
		Len int
		// MaxLen is the high-water mark of Len.
		MaxLen int
		// Zero is the number of items in the zero priority tier.
		Zero int
		// NegativeBuckets is the number of distinct negative priorities.
		NegativeBuckets int
		// PositiveBuckets is the number of distinct positive priorities.
		PositiveBuckets int
		// NegativeTableSize is the hash table size of the negative tier.
		NegativeTableSize int
		// PositiveTableSize is the hash table size of the positive tier.
		PositiveTableSize int
	}
)

// New initializes a new, empty Queue. An error is returned if any option is
// invalid.
func New[E comparable](opts ...Option) (*Queue[E], error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return newQueue[E](cfg), nil
}

func newQueue[E comparable](cfg *queueOptions) *Queue[E] {
	report := newReporter(cfg)
	return &Queue[E]{
		report: report,
		neg:    newBucketIndex[E](tierNegative, cfg.heapSize, cfg.tableSize, report),
		pos:    newBucketIndex[E](tierPositive, cfg.heapSize, cfg.tableSize, report),
	}
}

// Enqueue adds item using the given strategy. The bits and words parameters
// are ignored by FIFO and LIFO, otherwise they describe the priority:
//
//   - IntegerFIFO, IntegerLIFO: words[0] is an int32 (two's complement), bits
//     is ignored
//   - BitfieldFIFO, BitfieldLIFO: a bits wide bit vector, ceil(bits/32)
//     words, most significant first, left-aligned
//   - LongFIFO, LongLIFO: bits must be 64, and words an int64 in host memory
//     order, see SplitInt64
//
// An unrecognized strategy is reported via the logger, and ErrInvalidStrategy
// is returned. A malformed priority results in ErrInvalidPriority. In both
// cases the queue is not modified.
func (x *Queue[E]) Enqueue(item E, strategy Strategy, bits int, words []uint32) error {
	var (
		key  Key
		keys bool
	)
	switch strategy {
	case FIFO, LIFO:

	case IntegerFIFO, IntegerLIFO:
		if len(words) < 1 {
			return fmt.Errorf(`%w: %s requires 1 word`, ErrInvalidPriority, strategy)
		}
		key, keys = SignedKey(int32(words[0])), true

	case BitfieldFIFO, BitfieldLIFO:
		var err error
		if key, err = NewKey(bits, words); err != nil {
			return err
		}
		keys = true

	case LongFIFO, LongLIFO:
		if bits != 64 || len(words) < 2 {
			return fmt.Errorf(`%w: %s requires 64 bits in 2 words, got %d bits in %d words`, ErrInvalidPriority, strategy, bits, len(words))
		}
		key, keys = SignedKey(int64(joinHostWords([2]uint32{words[0], words[1]}))), true

	default:
		x.report.invalidStrategy(strategy, x.length)
		return fmt.Errorf(`%w: %s`, ErrInvalidStrategy, strategy)
	}

	var d *deque.Deque[E]
	switch {
	case !keys:
		d = &x.zero
	case key.negative():
		d = x.neg.findOrCreate(key)
	default:
		d = x.pos.findOrCreate(key)
	}
	if strategy.lifo() {
		d.PushFront(item)
	} else {
		d.PushBack(item)
	}

	x.length++
	if x.length > x.maxLength {
		x.maxLength = x.length
	}
	return nil
}

// EnqueueFIFO appends item to the zero priority tier.
func (x *Queue[E]) EnqueueFIFO(item E) {
	_ = x.Enqueue(item, FIFO, 0, nil)
}

// EnqueueLIFO prepends item to the zero priority tier.
func (x *Queue[E]) EnqueueLIFO(item E) {
	_ = x.Enqueue(item, LIFO, 0, nil)
}

// EnqueueInt enqueues item with a 32-bit priority, using any strategy,
// though it is intended for IntegerFIFO and IntegerLIFO.
func (x *Queue[E]) EnqueueInt(item E, strategy Strategy, priority int32) error {
	return x.Enqueue(item, strategy, wordBits, []uint32{uint32(priority)})
}

// EnqueueInt64 enqueues item with a 64-bit priority, using any strategy,
// though it is intended for LongFIFO and LongLIFO.
func (x *Queue[E]) EnqueueInt64(item E, strategy Strategy, priority int64) error {
	w := SplitInt64(priority)
	return x.Enqueue(item, strategy, 64, w[:])
}

// Dequeue removes and returns the item with the lowest priority, or false if
// the queue is empty.
func (x *Queue[E]) Dequeue() (v E, ok bool) {
	if x.length == 0 {
		return
	}
	if v, ok = x.neg.popMin(); !ok {
		if v, ok = x.zero.PopFront(); !ok {
			v, ok = x.pos.popMin()
		}
	}
	if ok {
		x.length--
	}
	return
}

// PeekPriority returns the priority of the item Dequeue would return, without
// modifying the queue. ZeroKey is returned for the zero priority tier, and
// MaxKey if the queue is empty. The result must not be modified.
func (x *Queue[E]) PeekPriority() Key {
	if k, ok := x.neg.peekMin(); ok {
		return k
	}
	if !x.zero.Empty() {
		return ZeroKey
	}
	if k, ok := x.pos.peekMin(); ok {
		return k
	}
	return MaxKey
}

// Remove removes the first occurrence of item, trying the negative, zero,
// then positive tiers. It reports whether item was found. This is intended
// for cancellation, and runs in linear time.
func (x *Queue[E]) Remove(item E) bool {
	if x.neg.remove(item) || x.zero.Remove(item) || x.pos.remove(item) {
		x.length--
		return true
	}
	return false
}

// Len returns the number of queued items.
func (x *Queue[E]) Len() int { return x.length }

// MaxLen returns the high-water mark of Len.
func (x *Queue[E]) MaxLen() int { return x.maxLength }

// Empty reports whether the queue holds no items.
func (x *Queue[E]) Empty() bool { return x.length == 0 }

// Enumerate returns every queued item: the negative tier's buckets in heap
// order, the zero tier in dequeue order, then the positive tier's buckets in
// heap order. Only the order within each bucket matches Dequeue.
func (x *Queue[E]) Enumerate() []E {
	if x.length == 0 {
		return nil
	}
	items := make([]E, 0, x.length)
	items = x.neg.appendItems(items)
	x.zero.Range(func(v E) bool {
		items = append(items, v)
		return true
	})
	return x.pos.appendItems(items)
}

// Stats returns a summary of the queue.
func (x *Queue[E]) Stats() Stats {
	return Stats{
		Len:               x.length,
		MaxLen:            x.maxLength,
		Zero:              x.zero.Len(),
		NegativeBuckets:   x.neg.len(),
		PositiveBuckets:   x.pos.len(),
		NegativeTableSize: len(x.neg.table),
		PositiveTableSize: len(x.pos.table),
	}
}

// Reset drops every queued item and bucket, e.g. when decommissioning the
// run-queue slot. The items themselves are not touched. The high-water mark
// is retained.
func (x *Queue[E]) Reset() {
	x.neg.reset()
	x.pos.reset()
	x.zero.Reset()
	x.length = 0
}

// verify checks the invariants of both bucket indexes, and the length.
func (x *Queue[E]) verify() error {
	if err := x.neg.verify(); err != nil {
		return fmt.Errorf(`%s tier: %w`, tierNegative, err)
	}
	if err := x.pos.verify(); err != nil {
		return fmt.Errorf(`%s tier: %w`, tierPositive, err)
	}
	var n int
	for _, idx := range [...]*bucketIndex[E]{x.neg, x.pos} {
		for _, i := range idx.heap[1:] {
			n += idx.arena[i].items.Len()
		}
	}
	if n += x.zero.Len(); n != x.length {
		return fmt.Errorf(`length %d does not match %d queued items`, x.length, n)
	}
	return nil
}
