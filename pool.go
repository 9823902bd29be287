// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package readyq

import (
	"context"
	"sync"
)

// Pool is a run-queue slot: a Queue guarded by a mutex, with a Handoff that
// parks consumers while it is empty. Unlike Queue, all methods are safe to
// call concurrently.
//
// Instances must be initialized using the NewPool factory.
type Pool[E comparable] struct {
	queue   *Queue[E]
	handoff Handoff
	mu      sync.Mutex
	closed  bool
}

// NewPool initializes a new, empty Pool. An error is returned if any option
// is invalid.
func NewPool[E comparable](opts ...Option) (*Pool[E], error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Pool[E]{queue: newQueue[E](cfg)}, nil
}

// Push enqueues item, see Queue.Enqueue, waking any consumers blocked in
// Pop. ErrClosed is returned if the pool is closed.
func (x *Pool[E]) Push(item E, strategy Strategy, bits int, words []uint32) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.closed {
		return ErrClosed
	}
	if err := x.queue.Enqueue(item, strategy, bits, words); err != nil {
		return err
	}
	// wake while still holding the lock used for the enqueue
	x.handoff.Broadcast()
	return nil
}

// PushFIFO is Push with the FIFO strategy.
func (x *Pool[E]) PushFIFO(item E) error {
	return x.Push(item, FIFO, 0, nil)
}

// PushInt is Push with a 32-bit priority, see Queue.EnqueueInt.
func (x *Pool[E]) PushInt(item E, strategy Strategy, priority int32) error {
	return x.Push(item, strategy, wordBits, []uint32{uint32(priority)})
}

// PushInt64 is Push with a 64-bit priority, see Queue.EnqueueInt64.
func (x *Pool[E]) PushInt64(item E, strategy Strategy, priority int64) error {
	w := SplitInt64(priority)
	return x.Push(item, strategy, 64, w[:])
}

// TryPop removes and returns the item with the lowest priority, without
// blocking, or false if the pool is empty.
func (x *Pool[E]) TryPop() (E, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.queue.Dequeue()
}

// Pop removes and returns the item with the lowest priority, blocking until
// one is available. Items remaining after Close are still returned, after
// which ErrClosed is returned. If ctx is done first, ctx.Err() is returned.
func (x *Pool[E]) Pop(ctx context.Context) (E, error) {
	var zero E
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	x.mu.Lock()
	for {
		if v, ok := x.queue.Dequeue(); ok {
			x.mu.Unlock()
			return v, nil
		}
		if x.closed {
			x.mu.Unlock()
			return zero, ErrClosed
		}
		if err := x.handoff.WaitAndUnlockContext(ctx, &x.mu); err != nil {
			return zero, err
		}
		// re-validate, another consumer may have won the item
		x.mu.Lock()
	}
}

// Remove cancels a still-queued item, reporting whether it was found.
func (x *Pool[E]) Remove(item E) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.queue.Remove(item)
}

// PeekPriority returns the priority of the next item, see
// Queue.PeekPriority.
func (x *Pool[E]) PeekPriority() Key {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.queue.PeekPriority()
}

// Len returns the number of queued items.
func (x *Pool[E]) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.queue.Len()
}

// MaxLen returns the high-water mark of Len.
func (x *Pool[E]) MaxLen() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.queue.MaxLen()
}

// Stats returns a summary of the underlying queue.
func (x *Pool[E]) Stats() Stats {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.queue.Stats()
}

// Close prevents further pushes, and wakes all blocked consumers. Queued
// items remain available to Pop and TryPop. It is safe to call more than
// once.
func (x *Pool[E]) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.closed = true
	x.handoff.Broadcast()
	return nil
}
