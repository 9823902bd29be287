package readyq

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoff_Broadcast_wakesAll(t *testing.T) {
	const waiters = 8
	var (
		mu      sync.Mutex
		handoff Handoff
		parked  int
		woken   sync.WaitGroup
	)
	woken.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer woken.Done()
			mu.Lock()
			parked++
			handoff.WaitAndUnlock(&mu)
		}()
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return parked == waiters
	}, time.Second*5, time.Millisecond)

	mu.Lock()
	handoff.Broadcast()
	mu.Unlock()

	woken.Wait()
	// the lock is not reacquired by waiters
	require.True(t, mu.TryLock())
	mu.Unlock()
}

func TestHandoff_Broadcast_noWaiters(t *testing.T) {
	var handoff Handoff
	handoff.Broadcast()
	handoff.Broadcast()
	assert.Nil(t, handoff.ch)

	// a later waiter is not woken by an earlier broadcast
	var mu sync.Mutex
	mu.Lock()
	assert.False(t, handoff.TimedWaitAndUnlock(&mu, time.Millisecond*10))
}

func TestHandoff_TimedWaitAndUnlock(t *testing.T) {
	var (
		mu      sync.Mutex
		handoff Handoff
	)

	mu.Lock()
	start := time.Now()
	assert.False(t, handoff.TimedWaitAndUnlock(&mu, time.Millisecond*20))
	assert.GreaterOrEqual(t, time.Since(start), time.Millisecond*20)

	mu.Lock()
	// discard the abandoned registration
	handoff.Broadcast()
	done := make(chan bool, 1)
	go func() {
		mu.Lock()
		done <- handoff.TimedWaitAndUnlock(&mu, time.Minute)
	}()
	mu.Unlock()
	broadcastWhenParked(t, &mu, &handoff)
	assert.True(t, <-done)
}

// broadcastWhenParked waits for a waiter to register, then wakes it.
func broadcastWhenParked(t *testing.T, mu *sync.Mutex, handoff *Handoff) {
	t.Helper()
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		if handoff.ch == nil {
			return false
		}
		handoff.Broadcast()
		return true
	}, time.Second*5, time.Millisecond)
}

func TestHandoff_WaitAndUnlockContext(t *testing.T) {
	var (
		mu      sync.Mutex
		handoff Handoff
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()
	mu.Lock()
	assert.ErrorIs(t, handoff.WaitAndUnlockContext(ctx, &mu), context.DeadlineExceeded)
	require.True(t, mu.TryLock())
	handoff.Broadcast()

	done := make(chan error, 1)
	go func() {
		mu.Lock()
		done <- handoff.WaitAndUnlockContext(context.Background(), &mu)
	}()
	mu.Unlock()
	broadcastWhenParked(t, &mu, &handoff)
	assert.NoError(t, <-done)
}
