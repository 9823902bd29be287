// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package readyq

import (
	"context"
	"sync"
	"time"
)

// Handoff is a wait/broadcast primitive, for parking a scheduler goroutine
// while its queue is empty. It is guarded by the caller's lock, which must be
// the same lock used to serialize access to the queue.
//
// The zero value is ready to use. A Handoff must not be copied after first
// use.
type Handoff struct {
	// ch is closed by Broadcast, and lazily replaced by the next waiter
	ch chan struct{}
}

// register returns the channel the next Broadcast will close.
//
// CALLER MUST HOLD THE LOCK.
func (x *Handoff) register() <-chan struct{} {
	if x.ch == nil {
		x.ch = make(chan struct{})
	}
	return x.ch
}

// WaitAndUnlock releases lock, then blocks until the next Broadcast. It does
// not wake spuriously, and does not reacquire lock.
//
// CALLER MUST HOLD THE LOCK.
func (x *Handoff) WaitAndUnlock(lock sync.Locker) {
	ch := x.register()
	lock.Unlock()
	<-ch
}

// TimedWaitAndUnlock releases lock, then blocks until the next Broadcast, or
// until d elapses, reporting whether it was woken by a Broadcast. Callers
// must re-check their condition in either case. It does not reacquire lock.
//
// CALLER MUST HOLD THE LOCK.
func (x *Handoff) TimedWaitAndUnlock(lock sync.Locker, d time.Duration) bool {
	ch := x.register()
	lock.Unlock()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}

// WaitAndUnlockContext releases lock, then blocks until the next Broadcast,
// or until ctx is done, in which case ctx.Err() is returned. It does not
// reacquire lock.
//
// CALLER MUST HOLD THE LOCK.
func (x *Handoff) WaitAndUnlockContext(ctx context.Context, lock sync.Locker) error {
	ch := x.register()
	lock.Unlock()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Broadcast wakes all current waiters. It is a no-op if there are none.
//
// CALLER MUST HOLD THE LOCK.
func (x *Handoff) Broadcast() {
	if x.ch != nil {
		close(x.ch)
		x.ch = nil
	}
}
