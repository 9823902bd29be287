// Package deque implements the double-ended queue that backs every priority
// bucket, as a growable power-of-2 ring buffer.
package deque

const (
	// minSize is the capacity of the first allocation.
	minSize = 4

	// resetMaxSize caps the capacity retained by Reset, so a recycled bucket
	// does not pin a buffer sized for a burst.
	resetMaxSize = 1024
)

// Deque is a FIFO/LIFO queue of comparable values. The zero value is an empty
// deque, ready to use.
//
// Thread Safety: Deque is NOT thread-safe. The caller must provide external
// synchronization.
type Deque[E comparable] struct {
	s    []E
	r, w uint
}

func (x *Deque[E]) mask(val uint) uint {
	return val & (uint(len(x.s)) - 1)
}

// bounds returns the occupied region(s) of s, as s[i1:l1] followed by
// s[:l2].
func (x *Deque[E]) bounds() (i1, l1, l2 int) {
	if x.r == x.w {
		return
	}
	i1 = int(x.mask(x.r))
	l1 = int(x.mask(x.w))
	if l1 <= i1 {
		l2 = l1
		l1 = len(x.s)
	}
	return
}

// Len returns the number of values in the deque.
func (x *Deque[E]) Len() int {
	return int(x.w - x.r)
}

// Cap returns the capacity of the underlying buffer.
func (x *Deque[E]) Cap() int {
	return len(x.s)
}

// Empty reports whether the deque contains no values, in O(1).
func (x *Deque[E]) Empty() bool {
	return x.r == x.w
}

// Get returns the value at index i, where 0 is the front. Panics if i is out
// of range.
func (x *Deque[E]) Get(i int) E {
	if i < 0 || i >= x.Len() {
		panic(`readyq: deque: get: index out of range`)
	}
	return x.s[x.mask(x.r+uint(i))]
}

// PushBack appends v to the back of the deque.
func (x *Deque[E]) PushBack(v E) {
	if x.Len() == len(x.s) {
		x.grow()
	}
	x.s[x.mask(x.w)] = v
	x.w++
}

// PushFront prepends v to the front of the deque.
func (x *Deque[E]) PushFront(v E) {
	if x.Len() == len(x.s) {
		x.grow()
	}
	x.r--
	x.s[x.mask(x.r)] = v
}

// PopFront removes and returns the value at the front of the deque, or false
// if it is empty.
func (x *Deque[E]) PopFront() (v E, ok bool) {
	if x.r == x.w {
		return
	}
	i := x.mask(x.r)
	v, ok = x.s[i], true
	var zero E
	x.s[i] = zero
	x.r++
	return
}

// Remove removes the first occurrence of v, reporting whether it was found.
func (x *Deque[E]) Remove(v E) bool {
	return x.RemoveFunc(func(e E) bool { return e == v })
}

// RemoveFunc removes at most one value, the first (from the front) that
// matches pred, reporting whether one was removed. The relative order of the
// remaining values is preserved.
func (x *Deque[E]) RemoveFunc(pred func(E) bool) bool {
	l := x.Len()
	for i := 0; i < l; i++ {
		if !pred(x.s[x.mask(x.r+uint(i))]) {
			continue
		}
		var zero E
		if i < l/2 {
			// closer to the front: shift the preceding values back by one
			for j := i; j > 0; j-- {
				x.s[x.mask(x.r+uint(j))] = x.s[x.mask(x.r+uint(j-1))]
			}
			x.s[x.mask(x.r)] = zero
			x.r++
		} else {
			for j := i; j < l-1; j++ {
				x.s[x.mask(x.r+uint(j))] = x.s[x.mask(x.r+uint(j+1))]
			}
			x.w--
			x.s[x.mask(x.w)] = zero
		}
		return true
	}
	return false
}

// Range calls fn for each value, front to back, until fn returns false.
func (x *Deque[E]) Range(fn func(v E) bool) {
	for i, l := 0, x.Len(); i < l; i++ {
		if !fn(x.s[x.mask(x.r+uint(i))]) {
			return
		}
	}
}

// Slice returns a copy of the values, front to back.
func (x *Deque[E]) Slice() (b []E) {
	if l := x.Len(); l != 0 {
		b = make([]E, l)
		i1, l1, l2 := x.bounds()
		copy(b, x.s[i1:l1])
		copy(b[l1-i1:], x.s[:l2])
	}
	return b
}

// Reset empties the deque, releasing references to all values. The buffer
// is retained for reuse, unless it has grown large.
func (x *Deque[E]) Reset() {
	if len(x.s) > resetMaxSize {
		x.s = nil
	} else {
		clear(x.s)
	}
	x.r = 0
	x.w = 0
}

func (x *Deque[E]) grow() {
	size := len(x.s) << 1
	if size == 0 {
		size = minSize
	}
	s := make([]E, size)
	i1, l1, l2 := x.bounds()
	n := copy(s, x.s[i1:l1])
	n += copy(s[n:], x.s[:l2])
	x.s = s
	x.r = 0
	x.w = uint(n)
}
