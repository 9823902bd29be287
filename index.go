package readyq

import (
	"fmt"

	"github.com/joeycumines/go-readyq/internal/deque"
)

// nilIdx is the sentinel arena index, e.g. for the end of a hash chain.
const nilIdx = ^uint32(0)

type (
	// bucketIndex is a min-heap of priority buckets, plus a hash table of
	// the same buckets, keyed by priority. Buckets live in an arena, and are
	// referenced by index from both structures. A bucket is live iff its
	// deque is non-empty.
	//
	// Thread Safety: NOT thread-safe.
	bucketIndex[E comparable] struct {
		report *reporter
		tier   string
		arena  []bucket[E]
		// heap[0] is unused, the root is heap[1]
		heap []uint32
		// table holds the head of each hash chain
		table   []uint32
		entries int
		// free is the head of the free list, linked via bucket.htNext
		free uint32
	}

	bucket[E comparable] struct {
		key   Key
		items deque.Deque[E]
		// htPrev is the previous bucket in the chain, or nilIdx if this
		// bucket is the head, in which case the table slot holds it
		htNext, htPrev uint32
		// heapPos is 0 while the bucket is free
		heapPos int
	}
)

func newBucketIndex[E comparable](tier string, heapSize, tableSize int, report *reporter) *bucketIndex[E] {
	x := bucketIndex[E]{
		report: report,
		tier:   tier,
		heap:   make([]uint32, 1, heapSize),
		table:  make([]uint32, tableSize),
		free:   nilIdx,
	}
	for i := range x.table {
		x.table[i] = nilIdx
	}
	return &x
}

// len returns the number of live buckets.
func (x *bucketIndex[E]) len() int {
	return len(x.heap) - 1
}

func (x *bucketIndex[E]) slot(k Key) uint32 {
	return k.hash() % uint32(len(x.table))
}

// findOrCreate returns the deque of the bucket for key, creating the bucket
// if necessary. The key must not be modified after the call. The returned
// pointer is only valid until the next call that may create a bucket.
func (x *bucketIndex[E]) findOrCreate(key Key) *deque.Deque[E] {
	slot := x.slot(key)
	for i := x.table[slot]; i != nilIdx; i = x.arena[i].htNext {
		if x.arena[i].key.Equal(key) {
			return &x.arena[i].items
		}
	}

	i := x.alloc(key)

	// prepend to the hash chain
	b := &x.arena[i]
	b.htNext = x.table[slot]
	b.htPrev = nilIdx
	if b.htNext != nilIdx {
		x.arena[b.htNext].htPrev = i
	}
	x.table[slot] = i
	x.entries++
	if x.entries > 2*len(x.table) {
		x.rehash()
	}

	// insert into the heap
	if len(x.heap) == cap(x.heap) {
		heap := make([]uint32, len(x.heap), cap(x.heap)*2)
		copy(heap, x.heap)
		x.heap = heap
		x.report.heapGrown(x.tier, cap(heap))
	}
	x.heap = append(x.heap, i)
	x.siftUp(len(x.heap) - 1)

	return &x.arena[i].items
}

// popMin removes and returns the first item of the minimum bucket, evicting
// the bucket if it is now empty.
func (x *bucketIndex[E]) popMin() (v E, ok bool) {
	if len(x.heap) <= 1 {
		return
	}
	i := x.heap[1]
	v, ok = x.arena[i].items.PopFront()
	if x.arena[i].items.Empty() {
		x.evict(i)
	}
	return
}

// peekMin returns the key of the minimum bucket, or false if there are no
// buckets.
func (x *bucketIndex[E]) peekMin() (Key, bool) {
	if len(x.heap) <= 1 {
		return Key{}, false
	}
	return x.arena[x.heap[1]].key, true
}

// remove removes the first occurrence of item, scanning buckets in heap
// order, evicting the bucket if it is now empty.
func (x *bucketIndex[E]) remove(item E) bool {
	for pos := 1; pos < len(x.heap); pos++ {
		i := x.heap[pos]
		if !x.arena[i].items.Remove(item) {
			continue
		}
		if x.arena[i].items.Empty() {
			x.evict(i)
		}
		return true
	}
	return false
}

// appendItems appends every item to dst, buckets in heap order, each bucket
// front to back.
func (x *bucketIndex[E]) appendItems(dst []E) []E {
	for _, i := range x.heap[1:] {
		x.arena[i].items.Range(func(v E) bool {
			dst = append(dst, v)
			return true
		})
	}
	return dst
}

// reset drops every bucket, retaining the heap and table allocations.
func (x *bucketIndex[E]) reset() {
	for i := range x.arena {
		x.arena[i].items.Reset()
	}
	x.arena = x.arena[:0]
	x.free = nilIdx
	x.heap = x.heap[:1]
	for i := range x.table {
		x.table[i] = nilIdx
	}
	x.entries = 0
}

func (x *bucketIndex[E]) alloc(key Key) (i uint32) {
	if x.free != nilIdx {
		i = x.free
		x.free = x.arena[i].htNext
	} else {
		if uint64(len(x.arena)) >= uint64(nilIdx) {
			panic(`readyq: bucket arena exhausted`)
		}
		x.arena = append(x.arena, bucket[E]{})
		i = uint32(len(x.arena) - 1)
	}
	x.arena[i].key = key
	return i
}

func (x *bucketIndex[E]) release(i uint32) {
	b := &x.arena[i]
	b.items.Reset()
	b.key = Key{}
	b.heapPos = 0
	b.htPrev = nilIdx
	b.htNext = x.free
	x.free = i
}

// evict removes a (now empty) bucket from both the hash table and the heap,
// then releases it.
func (x *bucketIndex[E]) evict(i uint32) {
	x.unlink(i)
	x.removeHeapAt(x.arena[i].heapPos)
	x.release(i)
}

func (x *bucketIndex[E]) unlink(i uint32) {
	b := &x.arena[i]
	if b.htNext != nilIdx {
		x.arena[b.htNext].htPrev = b.htPrev
	}
	if b.htPrev != nilIdx {
		x.arena[b.htPrev].htNext = b.htNext
	} else {
		x.table[x.slot(b.key)] = b.htNext
	}
	x.entries--
}

// rehash doubles the hash table, re-chaining every bucket. Heap positions are
// unaffected.
func (x *bucketIndex[E]) rehash() {
	table := make([]uint32, len(x.table)*2)
	for i := range table {
		table[i] = nilIdx
	}
	for _, head := range x.table {
		for i := head; i != nilIdx; {
			b := &x.arena[i]
			next := b.htNext
			slot := b.key.hash() % uint32(len(table))
			b.htNext = table[slot]
			b.htPrev = nilIdx
			if b.htNext != nilIdx {
				x.arena[b.htNext].htPrev = i
			}
			table[slot] = i
			i = next
		}
	}
	x.table = table
	x.report.rehashed(x.tier, len(table), x.entries)
}

func (x *bucketIndex[E]) removeHeapAt(pos int) {
	last := len(x.heap) - 1
	moved := x.heap[last]
	x.heap = x.heap[:last]
	if pos == last {
		return
	}
	x.heap[pos] = moved
	x.arena[moved].heapPos = pos
	x.siftDown(pos)
	if x.arena[moved].heapPos == pos {
		x.siftUp(pos)
	}
}

func (x *bucketIndex[E]) siftUp(pos int) {
	i := x.heap[pos]
	key := x.arena[i].key
	for pos > 1 {
		parentPos := pos >> 1
		parent := x.heap[parentPos]
		if Compare(key, x.arena[parent].key) >= 0 {
			break
		}
		x.heap[pos] = parent
		x.arena[parent].heapPos = pos
		pos = parentPos
	}
	x.heap[pos] = i
	x.arena[i].heapPos = pos
}

func (x *bucketIndex[E]) siftDown(pos int) {
	i := x.heap[pos]
	key := x.arena[i].key
	n := len(x.heap)
	for {
		childPos := pos << 1
		if childPos >= n {
			break
		}
		if childPos+1 < n && Compare(x.arena[x.heap[childPos+1]].key, x.arena[x.heap[childPos]].key) < 0 {
			childPos++
		}
		child := x.heap[childPos]
		if Compare(x.arena[child].key, key) >= 0 {
			break
		}
		x.heap[pos] = child
		x.arena[child].heapPos = pos
		pos = childPos
	}
	x.heap[pos] = i
	x.arena[i].heapPos = pos
}

// verify checks the structural invariants, returning an error describing the
// first violation found. It is intended for tests.
func (x *bucketIndex[E]) verify() error {
	for pos := 1; pos < len(x.heap); pos++ {
		i := x.heap[pos]
		if int(i) >= len(x.arena) {
			return fmt.Errorf(`heap[%d]: bucket %d out of range`, pos, i)
		}
		b := &x.arena[i]
		if b.heapPos != pos {
			return fmt.Errorf(`heap[%d]: bucket %d has heapPos %d`, pos, i, b.heapPos)
		}
		if b.items.Empty() {
			return fmt.Errorf(`heap[%d]: bucket %d (%s) is empty`, pos, i, b.key)
		}
		if pos > 1 {
			if parent := x.arena[x.heap[pos>>1]].key; Compare(parent, b.key) > 0 {
				return fmt.Errorf(`heap[%d]: key %s less than parent %s`, pos, b.key, parent)
			}
		}
	}

	var count int
	for slot, head := range x.table {
		prev := nilIdx
		for i := head; i != nilIdx; i = x.arena[i].htNext {
			b := &x.arena[i]
			if b.htPrev != prev {
				return fmt.Errorf(`table[%d]: bucket %d has htPrev %d, expected %d`, slot, i, b.htPrev, prev)
			}
			if s := x.slot(b.key); s != uint32(slot) {
				return fmt.Errorf(`table[%d]: bucket %d (%s) belongs in slot %d`, slot, i, b.key, s)
			}
			if b.heapPos < 1 || b.heapPos >= len(x.heap) || x.heap[b.heapPos] != i {
				return fmt.Errorf(`table[%d]: bucket %d not in heap`, slot, i)
			}
			for j := b.htNext; j != nilIdx; j = x.arena[j].htNext {
				if x.arena[j].key.Equal(b.key) {
					return fmt.Errorf(`table[%d]: duplicate key %s`, slot, b.key)
				}
			}
			count++
			prev = i
		}
	}
	if count != x.entries || count != x.len() {
		return fmt.Errorf(`entry count mismatch: table %d, counter %d, heap %d`, count, x.entries, x.len())
	}
	if x.entries > 2*len(x.table) {
		return fmt.Errorf(`%d entries exceeds twice the table size %d`, x.entries, len(x.table))
	}
	return nil
}
